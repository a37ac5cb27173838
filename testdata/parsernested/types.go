package parsernested

import "time"

type Leaf struct {
	Value string
}

type Child struct {
	Leaf Leaf `meta:"expand"`
}

type Root struct {
	Child     Child `meta:"expand"`
	ChildPtr  *Child
	ChildList []Child
	Self      *Root
	When      time.Time
}
