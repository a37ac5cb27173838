package generator

import (
	"fmt"
	"testing"

	"github.com/seitarof/gen-meta/internal/parser"
	"github.com/seitarof/gen-meta/internal/resolver"
)

type passthroughFormatter struct{}

type discardWriter struct{}

func (passthroughFormatter) Format(_ string, src []byte) ([]byte, error) { return src, nil }

func (discardWriter) Write(_ string, _ []byte) error { return nil }

func BenchmarkGeneratorGenerate_TemplateOnly(b *testing.B) {
	g := New(passthroughFormatter{}, discardWriter{})
	cfg := testConfig{filename: "bench_gen.go"}
	plans := benchmarkPlans(8, 32)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := g.Generate(cfg, plans); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkPlans(structCount, fieldCount int) []resolver.TablePlan {
	out := make([]resolver.TablePlan, 0, structCount)
	for i := 0; i < structCount; i++ {
		members := make([]resolver.MemberPlan, 0, fieldCount)
		for j := 0; j < fieldCount; j++ {
			members = append(members, resolver.MemberPlan{
				Field: parser.FieldInfo{Name: fmt.Sprintf("field%d", j), Index: []int{j}, TypeStr: "string"},
				Read:  resolver.Access{Strategy: resolver.StrategyField, Expr: fmt.Sprintf("t.field%d", j)},
				Write: resolver.Access{Strategy: resolver.StrategyField, Expr: fmt.Sprintf("t.field%d = x", j)},
			})
		}
		out = append(out, resolver.TablePlan{
			Struct:  &parser.StructInfo{Name: fmt.Sprintf("Type%d", i), PkgName: "model", PkgPath: "example.com/model"},
			Members: members,
		})
	}
	return out
}
