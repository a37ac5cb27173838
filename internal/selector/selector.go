// Package selector picks which parsed structs and fields get a member
// table.
package selector

import (
	"slices"
	"strings"

	"github.com/seitarof/gen-meta/internal/parser"
)

// StructSelector orders the structs of a run.
type StructSelector interface {
	SelectStructs(groups ...[]*parser.StructInfo) []*parser.StructInfo
}

// FieldSelector drops ignored fields from a struct.
type FieldSelector interface {
	Select(info *parser.StructInfo, ignoreFields []string) []parser.FieldInfo
}

type structSelectorImpl struct{}

type fieldSelectorImpl struct{}

// NewStructSelector returns default struct selector.
func NewStructSelector() StructSelector {
	return &structSelectorImpl{}
}

// NewFieldSelector returns default field selector.
func NewFieldSelector() FieldSelector {
	return &fieldSelectorImpl{}
}

// SelectStructs merges the results of several recursive parses. Each struct
// appears once, at its first occurrence, and requested roots come before the
// structs they depend on.
func (s *structSelectorImpl) SelectStructs(groups ...[]*parser.StructInfo) []*parser.StructInfo {
	seen := map[string]bool{}
	out := []*parser.StructInfo{}
	for _, infos := range groups {
		// ParseRecursive returns leaf-first; reverse so root comes first.
		for _, info := range slices.Backward(infos) {
			key := info.PkgPath + "." + info.Name
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, info)
		}
	}
	return out
}

// Select keeps the fields of info not named by ignoreFields. An entry is a
// field name, applying to every struct, or Struct.Field.
func (s *fieldSelectorImpl) Select(info *parser.StructInfo, ignoreFields []string) []parser.FieldInfo {
	ignoreSet := toIgnoreSet(ignoreFields)
	out := make([]parser.FieldInfo, 0, len(info.Fields))
	for _, f := range info.Fields {
		if ignoreSet[f.Name] || ignoreSet[info.Name+"."+f.Name] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func toIgnoreSet(ignoreFields []string) map[string]bool {
	set := make(map[string]bool, len(ignoreFields))
	for _, f := range ignoreFields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		set[f] = true
	}
	return set
}
