package parser

import (
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_BasicStruct(t *testing.T) {
	p := New()

	info, err := p.Parse("github.com/seitarof/gen-meta/testdata/parserbasic", "User")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if info.Name != "User" {
		t.Fatalf("expected Name=User, got %s", info.Name)
	}
	if info.PkgName != "parserbasic" {
		t.Fatalf("expected PkgName=parserbasic, got %s", info.PkgName)
	}
	if fieldByName(info.Fields, "_") != nil {
		t.Fatal("blank field should be excluded")
	}

	profile := fieldByName(info.Fields, "Profile")
	if profile == nil {
		t.Fatal("Profile field not found")
	}
	if profile.TypeInfo.Kind != TypeKindStruct {
		t.Fatalf("Profile kind = %v, want TypeKindStruct", profile.TypeInfo.Kind)
	}
	if len(profile.Imports) != 0 {
		t.Fatalf("Profile is local, got imports %v", profile.Imports)
	}

	ptr := fieldByName(info.Fields, "Ptr")
	if ptr == nil || ptr.TypeInfo.Kind != TypeKindPointer {
		t.Fatalf("Ptr should be pointer field, got %#v", ptr)
	}

	tags := fieldByName(info.Fields, "Tags")
	if tags == nil || tags.TypeInfo.Kind != TypeKindSlice {
		t.Fatalf("Tags should be slice field, got %#v", tags)
	}

	name := fieldByName(info.Fields, "Name")
	if name == nil {
		t.Fatal("Name field not found")
	}
	if diff := cmp.Diff([]int{2}, name.Index); diff != "" {
		t.Fatalf("Name index mismatch (-want +got):\n%s", diff)
	}
	if name.Tag != `meta:"position=2"` {
		t.Fatalf("Name tag = %q", name.Tag)
	}
}

func TestParse_UnexportedFieldsAndMethods(t *testing.T) {
	info, err := New().Parse("github.com/seitarof/gen-meta/testdata/parserbasic", "User")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	hidden := fieldByName(info.Fields, "hidden")
	if hidden == nil {
		t.Fatal("unexported field should be included")
	}
	if hidden.IsExported || !hidden.Accessible {
		t.Fatalf("hidden should be unexported but accessible: %#v", hidden)
	}
	if hidden.Getter != "GetHidden" || hidden.Setter != "" {
		t.Fatalf("hidden methods = %q/%q, want GetHidden/\"\"", hidden.Getter, hidden.Setter)
	}

	name := fieldByName(info.Fields, "Name")
	if name.Getter != "GetName" || name.Setter != "SetName" {
		t.Fatalf("Name methods = %q/%q", name.Getter, name.Setter)
	}

	id := fieldByName(info.Fields, "ID")
	if id.Getter != "" {
		t.Fatalf("GetID returns int64 and must not be the getter of an int field, got %q", id.Getter)
	}

	secret := fieldByName(info.Fields, "secret")
	if secret == nil || !secret.Nameable {
		t.Fatalf("local unexported types can be named: %#v", secret)
	}
}

func TestParseRecursive_NestedAndCycle(t *testing.T) {
	p := New()

	infos, err := p.ParseRecursive("github.com/seitarof/gen-meta/testdata/parsernested", "Root")
	if err != nil {
		t.Fatalf("ParseRecursive() error = %v", err)
	}

	var got []string
	for _, info := range infos {
		got = append(got, info.Name)
	}
	if diff := cmp.Diff([]string{"Leaf", "Child", "Root"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	when := fieldByName(infos[2].Fields, "When")
	if diff := cmp.Diff([]string{"time"}, when.Imports); diff != "" {
		t.Fatalf("When imports mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmbeddedAndConflict(t *testing.T) {
	p := New()

	info, err := p.Parse("github.com/seitarof/gen-meta/testdata/parserembed", "User")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	name := fieldByName(info.Fields, "Name")
	if name == nil {
		t.Fatal("Name field not found")
	}
	if name.AccessPath != "Name" {
		t.Fatalf("Name access path = %q, want direct field", name.AccessPath)
	}

	id := fieldByName(info.Fields, "ID")
	if id == nil {
		t.Fatal("ID field not found")
	}
	if id.AccessPath != "Base.ID" {
		t.Fatalf("ID access path = %q, want Base.ID", id.AccessPath)
	}
	if diff := cmp.Diff([]int{0, 0}, id.Index); diff != "" {
		t.Fatalf("ID index mismatch (-want +got):\n%s", diff)
	}

	if fieldByName(info.Fields, "Code") != nil {
		t.Fatal("Code should be dropped due to same-depth embedded conflict")
	}

	if note := fieldByName(info.Fields, "note"); note == nil || !note.Accessible {
		t.Fatalf("note is declared in the parsed package: %#v", note)
	}
	if created := fieldByName(info.Fields, "CreatedBy"); created == nil || !created.Accessible {
		t.Fatalf("CreatedBy is exported: %#v", created)
	}
	if rev := fieldByName(info.Fields, "revision"); rev == nil || rev.Accessible {
		t.Fatalf("revision belongs to another package: %#v", rev)
	}

	owner := fieldByName(info.Fields, "Owner")
	if owner == nil || owner.TypeStr != "*Owner" {
		t.Fatalf("embedded pointers are plain fields, got %#v", owner)
	}
	if fieldByName(info.Fields, "Login") != nil {
		t.Fatal("fields behind an embedded pointer are not promoted")
	}
}

func TestParse_TypeNotFound(t *testing.T) {
	p := New()

	_, err := p.Parse("github.com/seitarof/gen-meta/testdata/parserbasic", "NotExist")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestShouldRecurseNestedPackage(t *testing.T) {
	tests := []struct {
		name       string
		nestedPkg  string
		currentPkg string
		want       bool
	}{
		{
			name:       "same package",
			nestedPkg:  "example.com/mod/a",
			currentPkg: "example.com/mod/a",
			want:       true,
		},
		{
			name:       "same module different package",
			nestedPkg:  "example.com/mod/b",
			currentPkg: "example.com/mod/a",
			want:       false,
		},
		{
			name:       "standard library",
			nestedPkg:  "time",
			currentPkg: "example.com/mod/a",
			want:       false,
		},
		{
			name:       "empty",
			nestedPkg:  "",
			currentPkg: "",
			want:       false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := shouldRecurseNestedPackage(tc.nestedPkg, tc.currentPkg)
			if got != tc.want {
				t.Fatalf("shouldRecurseNestedPackage() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFieldScope_Refs(t *testing.T) {
	local := types.NewPackage("example.com/a", "a")
	other := types.NewPackage("example.com/b", "b")
	named := func(pkg *types.Package, name string) *types.Named {
		return types.NewNamed(types.NewTypeName(token.NoPos, pkg, name, nil), types.Typ[types.Int], nil)
	}
	scope := fieldScope{pkg: local}

	tests := []struct {
		name     string
		typ      types.Type
		imports  []string
		nameable bool
	}{
		{name: "basic", typ: types.Typ[types.String], nameable: true},
		{name: "local unexported", typ: named(local, "id"), nameable: true},
		{name: "foreign exported", typ: types.NewSlice(named(other, "ID")), imports: []string{"example.com/b"}, nameable: true},
		{name: "foreign unexported", typ: types.NewPointer(named(other, "id")), nameable: false},
		{
			name:     "map of both",
			typ:      types.NewMap(named(other, "K"), named(other, "V")),
			imports:  []string{"example.com/b"},
			nameable: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			imports, nameable := scope.refs(tc.typ)
			if diff := cmp.Diff(tc.imports, imports); diff != "" {
				t.Fatalf("imports mismatch (-want +got):\n%s", diff)
			}
			if nameable != tc.nameable {
				t.Fatalf("nameable = %v, want %v", nameable, tc.nameable)
			}
		})
	}
}

func fieldByName(fields []FieldInfo, name string) *FieldInfo {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i]
		}
	}
	return nil
}
