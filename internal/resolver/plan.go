package resolver

import "github.com/seitarof/gen-meta/internal/parser"

// Strategy identifies how one direction of a member is compiled.
type Strategy int

const (
	// StrategyMethod goes through the Get/Set method.
	StrategyMethod Strategy = iota
	// StrategyField selects the field directly.
	StrategyField
	// StrategySkip leaves the direction to reflection at run time.
	StrategySkip
)

func (s Strategy) String() string {
	switch s {
	case StrategyMethod:
		return "method"
	case StrategyField:
		return "field"
	case StrategySkip:
		return "skip"
	}
	return "unknown"
}

// Access is one compiled direction. Expr is written against Receiver, the
// typed owner pointer, and for writes against Value, the typed new value.
type Access struct {
	Strategy Strategy
	Expr     string
}

// Receiver and Value are the identifiers generated closures bind.
const (
	Receiver = "t"
	Value    = "x"
)

// MemberPlan describes the table entry of one field.
type MemberPlan struct {
	Field parser.FieldInfo
	Read  Access
	Write Access
}

// Skipped reports that neither direction could be compiled.
func (p MemberPlan) Skipped() bool {
	return p.Read.Strategy == StrategySkip && p.Write.Strategy == StrategySkip
}

// TablePlan describes the member table of one struct.
type TablePlan struct {
	Struct  *parser.StructInfo
	Members []MemberPlan
}
