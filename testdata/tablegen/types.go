package tablegen

//go:generate go run github.com/seitarof/gen-meta/cmd/gen-meta --path . --types Account --filename meta_gen.go --ignore-fields Account.Balance

type Audit struct {
	CreatedBy string
	revision  int
}

type Account struct {
	Audit
	ID      int    `meta:"position=1"`
	name    string `meta:"position=2"`
	Balance int64
	Owner   *Owner `meta:"expand"`
}

type Owner struct {
	Login string
}

func (a *Account) GetName() string { return a.name }

func (a *Account) SetName(v string) { a.name = v }

// Revision exposes the promoted unexported field for tests.
func (a *Account) Revision() int { return a.revision }
