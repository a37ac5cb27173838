package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/seitarof/gen-meta/internal/generator"
	"github.com/seitarof/gen-meta/internal/parser"
	"github.com/seitarof/gen-meta/internal/resolver"
	"github.com/seitarof/gen-meta/internal/selector"
)

func newDefaultRunner() Runner {
	return NewRunner(
		parser.New(),
		selector.NewStructSelector(),
		selector.NewFieldSelector(),
		resolver.New(resolver.DefaultRules()...),
		generator.New(generator.NewGoimportsFormatter(), generator.NewFileWriter()),
		nil,
	)
}

func TestRunner_Run_GeneratesNestedTables(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested_meta_gen.go")

	cfg := &Config{
		PkgPath:  "github.com/seitarof/gen-meta/testdata/parsernested",
		Types:    []string{"Root"},
		Filename: out,
	}
	if err := newDefaultRunner().Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	got := string(content)

	checks := []string{
		"// Code generated by gen-meta. DO NOT EDIT.",
		"package parsernested",
		`"time"`,
		"accessor.RegisterTable(reflect.TypeFor[Root]()",
		"accessor.RegisterTable(reflect.TypeFor[Child]()",
		"accessor.RegisterTable(reflect.TypeFor[Leaf]()",
		"x, _ := v.(time.Time)",
		"t.Self = x",
		"return t.ChildList",
	}
	for _, check := range checks {
		if !strings.Contains(got, check) {
			t.Fatalf("generated code does not contain %q\n%s", check, got)
		}
	}

	root := strings.Index(got, "TypeFor[Root]")
	leaf := strings.Index(got, "TypeFor[Leaf]")
	if root > leaf {
		t.Fatalf("requested root should be registered first\n%s", got)
	}
}

func TestRunner_Run_UsesMethodsAndIgnoresFields(t *testing.T) {
	out := filepath.Join(t.TempDir(), "basic_meta_gen.go")

	cfg := &Config{
		PkgPath:      "github.com/seitarof/gen-meta/testdata/parserbasic",
		Types:        []string{"User"},
		Filename:     out,
		IgnoreFields: []string{"User.Scores", "secret"},
	}
	if err := newDefaultRunner().Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	got := string(content)

	for _, check := range []string{
		"return t.GetName()",
		"t.SetName(x)",
		"return t.GetHidden()",
		"t.hidden = x",
		"accessor.RegisterTable(reflect.TypeFor[Profile]()",
	} {
		if !strings.Contains(got, check) {
			t.Fatalf("generated code does not contain %q\n%s", check, got)
		}
	}
	for _, absent := range []string{`"Scores"`, `"secret"`} {
		if strings.Contains(got, absent) {
			t.Fatalf("ignored field %s was generated\n%s", absent, got)
		}
	}
}

func TestRunner_Run_UnknownType(t *testing.T) {
	cfg := &Config{
		PkgPath:  "github.com/seitarof/gen-meta/testdata/parserbasic",
		Types:    []string{"Missing"},
		Filename: filepath.Join(t.TempDir(), "out.go"),
	}
	if err := newDefaultRunner().Run(cfg); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRunner_Run_CommittedTableIsCurrent(t *testing.T) {
	out := filepath.Join(t.TempDir(), "meta_gen.go")

	cfg := &Config{
		PkgPath:      "github.com/seitarof/gen-meta/testdata/tablegen",
		Types:        []string{"Account"},
		Filename:     out,
		IgnoreFields: []string{"Account.Balance"},
	}
	if err := newDefaultRunner().Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	generated, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	committed, err := os.ReadFile(filepath.Join("..", "..", "testdata", "tablegen", "meta_gen.go"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	words := func(b []byte) []string { return strings.Fields(string(b)) }
	if diff := cmp.Diff(words(committed), words(generated)); diff != "" {
		t.Fatalf("testdata/tablegen/meta_gen.go is stale, run go generate (-committed +generated):\n%s", diff)
	}
}
