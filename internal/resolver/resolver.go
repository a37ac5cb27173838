package resolver

import (
	"github.com/seitarof/gen-meta/internal/parser"
)

// Resolver resolves how each member of a table is read and written.
type Resolver interface {
	Resolve(info *parser.StructInfo, fields []parser.FieldInfo) TablePlan
}

// Rule tries to compile one direction of a member.
type Rule interface {
	Name() string
	Read(f parser.FieldInfo) (Access, bool)
	Write(f parser.FieldInfo) (Access, bool)
}

type resolverImpl struct {
	rules []Rule
}

// New builds resolver with rule chain.
func New(rules ...Rule) Resolver {
	return &resolverImpl{rules: rules}
}

func (r *resolverImpl) Resolve(info *parser.StructInfo, fields []parser.FieldInfo) TablePlan {
	plans := make([]MemberPlan, 0, len(fields))
	for _, f := range fields {
		plans = append(plans, r.resolveOne(f))
	}
	return TablePlan{Struct: info, Members: plans}
}

func (r *resolverImpl) resolveOne(f parser.FieldInfo) MemberPlan {
	plan := MemberPlan{
		Field: f,
		Read:  Access{Strategy: StrategySkip},
		Write: Access{Strategy: StrategySkip},
	}
	for _, rule := range r.rules {
		if a, ok := rule.Read(f); ok {
			plan.Read = a
			break
		}
	}
	for _, rule := range r.rules {
		if a, ok := rule.Write(f); ok {
			plan.Write = a
			break
		}
	}
	return plan
}
