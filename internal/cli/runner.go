package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/seitarof/gen-meta/internal/generator"
	"github.com/seitarof/gen-meta/internal/parser"
	"github.com/seitarof/gen-meta/internal/resolver"
	"github.com/seitarof/gen-meta/internal/selector"
)

// Runner orchestrates parser/selector/resolver/generator layers.
type Runner interface {
	Run(cfg *Config) error
}

type runnerImpl struct {
	parser    parser.Parser
	structSel selector.StructSelector
	fieldSel  selector.FieldSelector
	resolver  resolver.Resolver
	generator generator.Generator
	log       *zap.Logger
}

// NewRunner creates a default runner implementation. A nil logger discards
// warnings.
func NewRunner(
	p parser.Parser,
	ss selector.StructSelector,
	fs selector.FieldSelector,
	r resolver.Resolver,
	g generator.Generator,
	log *zap.Logger,
) Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &runnerImpl{
		parser:    p,
		structSel: ss,
		fieldSel:  fs,
		resolver:  r,
		generator: g,
		log:       log,
	}
}

// Run executes a single generation cycle.
func (r *runnerImpl) Run(cfg *Config) error {
	groups := make([][]*parser.StructInfo, 0, len(cfg.Types))
	for _, typ := range cfg.Types {
		infos, err := r.parser.ParseRecursive(cfg.PkgPath, typ)
		if err != nil {
			return fmt.Errorf("parse %s: %w", typ, err)
		}
		groups = append(groups, infos)
	}

	structs := r.structSel.SelectStructs(groups...)
	if len(structs) == 0 {
		return fmt.Errorf("no structs found for %v in %q", cfg.Types, cfg.PkgPath)
	}

	plans := make([]resolver.TablePlan, 0, len(structs))
	for _, info := range structs {
		fields := r.fieldSel.Select(info, cfg.IgnoreFields)
		plan := r.resolver.Resolve(info, fields)
		r.logSkippedMembers(plan)
		plans = append(plans, plan)
	}

	return r.generator.Generate(cfg, plans)
}

func (r *runnerImpl) logSkippedMembers(plan resolver.TablePlan) {
	for _, m := range plan.Members {
		var skipped []string
		if m.Read.Strategy == resolver.StrategySkip {
			skipped = append(skipped, "read")
		}
		if m.Write.Strategy == resolver.StrategySkip {
			skipped = append(skipped, "write")
		}
		if len(skipped) == 0 {
			continue
		}
		r.log.Warn("member falls back to reflection",
			zap.String("struct", plan.Struct.Name),
			zap.String("field", m.Field.Name),
			zap.String("type", m.Field.TypeStr),
			zap.Strings("directions", skipped),
		)
	}
}
