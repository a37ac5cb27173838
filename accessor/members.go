package accessor

import (
	"reflect"
	"sort"
	"unicode"
	"unicode/utf8"
)

// Field is a structural member: a struct field together with the type that
// declares it. Index is the path from the described type, through embedded
// structs.
type Field struct {
	Owner reflect.Type
	reflect.StructField
}

// Method is a behavior member.
type Method struct {
	Owner reflect.Type
	reflect.Method
}

type fieldCandidate struct {
	field     Field
	depth     int
	order     int
	ambiguous bool
}

// flattenFields lists the fields of t including those promoted from embedded
// struct values. A shallower field hides deeper ones of the same name; two
// fields of the same name at the same depth hide each other.
func flattenFields(t reflect.Type) []Field {
	if t.Kind() != reflect.Struct {
		return nil
	}
	candidates := map[string]fieldCandidate{}
	order := 0
	collectFlattenedFields(t, nil, 0, candidates, &order)

	sorted := make([]fieldCandidate, 0, len(candidates))
	for _, cand := range candidates {
		if cand.ambiguous {
			continue
		}
		sorted = append(sorted, cand)
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].order < sorted[j].order
	})

	fields := make([]Field, 0, len(sorted))
	for _, cand := range sorted {
		fields = append(fields, cand.field)
	}
	return fields
}

func collectFlattenedFields(
	t reflect.Type,
	prefix []int,
	depth int,
	out map[string]fieldCandidate,
	order *int,
) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == "_" {
			continue
		}
		index := appendIndex(prefix, i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			collectFlattenedFields(f.Type, index, depth+1, out, order)
			continue
		}
		f.Index = index
		addCandidate(out, Field{Owner: t, StructField: f}, depth, order)
	}
}

func addCandidate(out map[string]fieldCandidate, field Field, depth int, order *int) {
	cand, exists := out[field.Name]
	if !exists || depth < cand.depth {
		out[field.Name] = fieldCandidate{field: field, depth: depth, order: *order}
		*order = *order + 1
		return
	}
	if depth == cand.depth {
		cand.ambiguous = true
		out[field.Name] = cand
	}
}

func appendIndex(prefix []int, i int) []int {
	next := make([]int, 0, len(prefix)+1)
	next = append(next, prefix...)
	return append(next, i)
}

// embeddedStructs returns the struct values embedded directly in t.
func embeddedStructs(t reflect.Type) []reflect.Type {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var out []reflect.Type
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			out = append(out, f.Type)
		}
	}
	return out
}

// blankFields returns the `_` fields of t, which carry type level tags.
func blankFields(t reflect.Type) []reflect.StructField {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var out []reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.Name == "_" {
			out = append(out, f)
		}
	}
	return out
}

// methodsOf returns the exported methods callable on an addressable t.
func methodsOf(t reflect.Type) []Method {
	mt := t
	if t.Kind() != reflect.Interface {
		mt = reflect.PointerTo(t)
	}
	out := make([]Method, 0, mt.NumMethod())
	for i := 0; i < mt.NumMethod(); i++ {
		out = append(out, Method{Owner: t, Method: mt.Method(i)})
	}
	return out
}

// behaviorMembers returns the attributes of a tag kind: its methods taking
// nothing and returning one value, TagName excluded. Methods with pointer
// receivers count, since tags of such kinds are pointers.
func behaviorMembers(t reflect.Type) []Method {
	mt := reflect.PointerTo(t)
	var out []Method
	for i := 0; i < mt.NumMethod(); i++ {
		m := mt.Method(i)
		if m.Name == "TagName" {
			continue
		}
		if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
			continue
		}
		out = append(out, Method{Owner: t, Method: m})
	}
	return out
}

// accessorMethods finds Get<Name> and Set<Name> for field f of t.
func accessorMethods(t reflect.Type, f reflect.StructField) (getter, setter string) {
	pt := reflect.PointerTo(t)
	name := capitalize(f.Name)
	if m, ok := pt.MethodByName(getterName(name)); ok {
		if m.Type.NumIn() == 1 && m.Type.NumOut() == 1 && m.Type.Out(0) == f.Type {
			getter = m.Name
		}
	}
	if m, ok := pt.MethodByName(setterName(name)); ok {
		if m.Type.NumIn() == 2 && m.Type.NumOut() == 0 && m.Type.In(1) == f.Type {
			setter = m.Name
		}
	}
	return getter, setter
}

func getterName(name string) string { return "Get" + name }

func setterName(name string) string { return "Set" + name }

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
