package resolver

import "github.com/seitarof/gen-meta/internal/parser"

// DefaultRules returns built-in rules in priority order: accessor methods
// first, then direct field access.
func DefaultRules() []Rule {
	return []Rule{
		&MethodRule{},
		&FieldRule{},
	}
}

// MethodRule: Get<Name>/Set<Name> methods.
type MethodRule struct{}

func (r *MethodRule) Name() string { return "method" }

func (r *MethodRule) Read(f parser.FieldInfo) (Access, bool) {
	if f.Getter == "" {
		return Access{}, false
	}
	return Access{Strategy: StrategyMethod, Expr: Receiver + "." + f.Getter + "()"}, true
}

func (r *MethodRule) Write(f parser.FieldInfo) (Access, bool) {
	if f.Setter == "" || !f.Nameable {
		return Access{}, false
	}
	return Access{Strategy: StrategyMethod, Expr: Receiver + "." + f.Setter + "(" + Value + ")"}, true
}

// FieldRule: plain selector, for fields the generated package can reach.
type FieldRule struct{}

func (r *FieldRule) Name() string { return "field" }

func (r *FieldRule) Read(f parser.FieldInfo) (Access, bool) {
	if !f.Accessible {
		return Access{}, false
	}
	return Access{Strategy: StrategyField, Expr: selector(f)}, true
}

func (r *FieldRule) Write(f parser.FieldInfo) (Access, bool) {
	if !f.Accessible || !f.Nameable {
		return Access{}, false
	}
	return Access{Strategy: StrategyField, Expr: selector(f) + " = " + Value}, true
}

func selector(f parser.FieldInfo) string {
	return Receiver + "." + f.AccessPath
}
