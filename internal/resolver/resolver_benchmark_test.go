package resolver

import (
	"fmt"
	"go/types"
	"testing"

	"github.com/seitarof/gen-meta/internal/parser"
)

func BenchmarkResolverResolve_MixedRules(b *testing.B) {
	r := New(DefaultRules()...)
	info, fields := benchmarkResolverInputs(64)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		plan := r.Resolve(info, fields)
		if len(plan.Members) != len(fields) {
			b.Fatalf("unexpected plan count: got %d want %d", len(plan.Members), len(fields))
		}
	}
}

func benchmarkResolverInputs(n int) (*parser.StructInfo, []parser.FieldInfo) {
	fields := make([]parser.FieldInfo, 0, n)
	for i := 0; i < n; i++ {
		f := newField(fmt.Sprintf("field%d", i), fmt.Sprintf("field%d", i), "string", types.Typ[types.String])
		switch i % 3 {
		case 0:
			f.Getter = fmt.Sprintf("GetField%d", i)
			f.Setter = fmt.Sprintf("SetField%d", i)
		case 1:
			f.Accessible = false
		}
		fields = append(fields, f)
	}
	return &parser.StructInfo{Name: "Wide", PkgPath: "example.com/wide"}, fields
}
