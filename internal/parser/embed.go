package parser

import (
	"sort"
	"strings"

	"go/types"
)

type fieldCandidate struct {
	field     FieldInfo
	depth     int
	order     int
	ambiguous bool
}

// flattenFields mirrors the field discovery of the accessor package: fields
// promoted from embedded struct values are included, a shallower field hides
// deeper ones of the same name and same-depth duplicates hide each other.
// Embedded pointers are ordinary fields.
func flattenFields(st *types.Struct, scope fieldScope) []FieldInfo {
	candidates := map[string]fieldCandidate{}
	order := 0
	collectFlattenedFields(st, embedding{accessible: true}, scope, candidates, &order)

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

	fields := make([]FieldInfo, 0, len(sorted))
	for _, cand := range sorted {
		fields = append(fields, cand.field)
	}
	return fields
}

// embedding is the path from the parsed struct down to an embedded one.
type embedding struct {
	path       []string
	index      []int
	from       string
	depth      int
	accessible bool
}

func (e embedding) enter(f *types.Var, i int, name string, visible bool) embedding {
	return embedding{
		path:       appendPath(e.path, f.Name()),
		index:      appendIndex(e.index, i),
		from:       name,
		depth:      e.depth + 1,
		accessible: e.accessible && visible,
	}
}

func collectFlattenedFields(
	st *types.Struct,
	at embedding,
	scope fieldScope,
	out map[string]fieldCandidate,
	order *int,
) {
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Name() == "_" {
			continue
		}
		if f.Embedded() {
			if embeddedStruct, embeddedName := resolveEmbeddedStruct(f.Type()); embeddedStruct != nil {
				next := at.enter(f, i, embeddedName, scope.visible(f))
				collectFlattenedFields(embeddedStruct, next, scope, out, order)
				continue
			}
		}

		imports, nameable := scope.refs(f.Type())
		field := FieldInfo{
			Name:       f.Name(),
			Index:      appendIndex(at.index, i),
			AccessPath: buildAccessPath(at.path, f.Name()),
			TypeStr:    types.TypeString(f.Type(), scope.qualifier),
			TypeInfo:   analyzeType(f.Type()),
			Type:       f.Type(),
			Tag:        st.Tag(i),
			IsExported: f.Exported(),
			EmbedFrom:  at.from,
			Accessible: at.accessible && scope.visible(f),
			Nameable:   nameable,
			Imports:    imports,
		}
		addCandidate(out, field, at.depth, order)
	}
}

func addCandidate(out map[string]fieldCandidate, field FieldInfo, depth int, order *int) {
	cand, exists := out[field.Name]
	if !exists {
		out[field.Name] = fieldCandidate{field: field, depth: depth, order: *order}
		*order = *order + 1
		return
	}

	if depth < cand.depth {
		out[field.Name] = fieldCandidate{field: field, depth: depth, order: *order}
		*order = *order + 1
		return
	}
	if depth > cand.depth {
		return
	}

	if cand.field.AccessPath != field.AccessPath {
		cand.ambiguous = true
		out[field.Name] = cand
	}
}

func appendPath(prefix []string, part string) []string {
	next := make([]string, 0, len(prefix)+1)
	next = append(next, prefix...)
	next = append(next, part)
	return next
}

func appendIndex(prefix []int, i int) []int {
	next := make([]int, 0, len(prefix)+1)
	next = append(next, prefix...)
	return append(next, i)
}

func buildAccessPath(prefix []string, fieldName string) string {
	if len(prefix) == 0 {
		return fieldName
	}
	parts := appendPath(prefix, fieldName)
	return strings.Join(parts, ".")
}

// resolveEmbeddedStruct returns the struct embedded by value, if any.
func resolveEmbeddedStruct(t types.Type) (*types.Struct, string) {
	switch v := t.(type) {
	case *types.Alias:
		return resolveEmbeddedStruct(v.Rhs())
	case *types.Named:
		if st, ok := v.Underlying().(*types.Struct); ok {
			return st, v.Obj().Name()
		}
	}
	return nil, ""
}
