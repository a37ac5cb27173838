package parserbasic

import "time"

type Profile struct {
	BirthAt time.Time
}

type User struct {
	_       struct{} `meta:"expand"`
	ID      int      `meta:"position=1"`
	Name    string   `meta:"position=2"`
	Profile Profile
	Ptr     *Profile
	Tags    []string
	Scores  map[string]int
	hidden  string
	secret  secret
}

type secret struct {
	value string
}

func (u *User) GetName() string { return u.Name }

func (u *User) SetName(v string) { u.Name = v }

// GetID does not match the field type, so it is not a getter.
func (u *User) GetID() int64 { return int64(u.ID) }

func (u *User) GetHidden() string { return u.hidden }
