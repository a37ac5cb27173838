package parserembed

import "github.com/seitarof/gen-meta/testdata/parserembed/external"

type Base struct {
	ID   int
	Name string
	note string
}

type InnerA struct {
	Code string
}

type InnerB struct {
	Code string
}

type User struct {
	Base
	InnerA
	InnerB
	external.Audit
	*Owner
	Name   string
	Email  string
	hidden string
}

type Owner struct {
	Login string
}
