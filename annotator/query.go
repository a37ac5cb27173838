package annotator

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/seitarof/gen-meta/accessor"
	"github.com/seitarof/gen-meta/matcher"
	"github.com/seitarof/gen-meta/tag"
)

// Scope is the category of value a Query is about.
type Scope int

const (
	TypeScope Scope = iota
	FieldScope
	MethodScope
	AccessorScope
)

func (s Scope) String() string {
	switch s {
	case TypeScope:
		return "type"
	case FieldScope:
		return "field"
	case MethodScope:
		return "method"
	case AccessorScope:
		return "accessor"
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// Query is what an Annotator knows about one value. Member lookups only
// apply to type queries; on other queries iterations are empty and single
// lookups fail with ErrUnsupported.
type Query struct {
	an    *Annotator
	scope Scope
	value any
	typ   reflect.Type
	desc  *accessor.Descriptor
	tags  []tag.Tag
}

// Value returns the queried value: a reflect.Type, an accessor.Field, an
// accessor.Method or an *accessor.Accessor.
func (q *Query) Value() any { return q.value }

// Scope returns the category of the queried value.
func (q *Query) Scope() Scope { return q.scope }

// Tags yields the tags of the queried value, containers unpacked. For a type
// these are its type level tags.
func (q *Query) Tags() iter.Seq[tag.Tag] { return slices.Values(q.tags) }

// TagsOf yields the tags of kind.
func (q *Query) TagsOf(kind reflect.Type) iter.Seq[tag.Tag] {
	return func(yield func(tag.Tag) bool) {
		for _, t := range q.tags {
			if tag.KindOf(t) == kind && !yield(t) {
				return
			}
		}
	}
}

// HasTag reports whether a tag of kind is present.
func (q *Query) HasTag(kind reflect.Type) bool { return tag.Has(q.tags, kind) }

// Tag returns the first tag of kind. A missing tag is an error only when
// required is set.
func (q *Query) Tag(kind reflect.Type, required bool) (tag.Tag, error) {
	for t := range q.TagsOf(kind) {
		return t, nil
	}
	if required {
		return nil, fmt.Errorf("tag %s on %s: %w", kind, q, accessor.ErrNotFound)
	}
	return nil, nil
}

// TagsThat yields the tags p matches.
func (q *Query) TagsThat(p matcher.Predicate[any]) iter.Seq[tag.Tag] {
	return filter(q.Tags(), p)
}

// Fields yields the structural members of the queried type.
func (q *Query) Fields() iter.Seq[accessor.Field] {
	if q.desc == nil {
		return empty[accessor.Field]
	}
	return slices.Values(q.desc.Fields())
}

// Field returns the structural member called name.
func (q *Query) Field(name string) (accessor.Field, error) {
	if q.desc == nil {
		return accessor.Field{}, q.unsupported("field " + name)
	}
	return q.desc.Field(name)
}

// FieldsThat yields the structural members p matches.
func (q *Query) FieldsThat(p matcher.Predicate[any]) iter.Seq[accessor.Field] {
	return filter(q.Fields(), p)
}

// Methods yields the methods of the queried type.
func (q *Query) Methods() iter.Seq[accessor.Method] {
	if q.desc == nil {
		return empty[accessor.Method]
	}
	return slices.Values(q.desc.Methods())
}

// MethodsThat yields the methods p matches.
func (q *Query) MethodsThat(p matcher.Predicate[any]) iter.Seq[accessor.Method] {
	return filter(q.Methods(), p)
}

// Accessors yields every node of the property tree of the queried type.
func (q *Query) Accessors() iter.Seq[*accessor.Accessor] {
	if q.desc == nil {
		return empty[*accessor.Accessor]
	}
	return slices.Values(q.desc.Accessors())
}

// Accessor returns the node with the given dotted name.
func (q *Query) Accessor(name string) (*accessor.Accessor, error) {
	if q.desc == nil {
		return nil, q.unsupported("accessor " + name)
	}
	return q.desc.Accessor(name)
}

// AccessorsThat yields the nodes p matches.
func (q *Query) AccessorsThat(p matcher.Predicate[any]) iter.Seq[*accessor.Accessor] {
	return filter(q.Accessors(), p)
}

func (q *Query) unsupported(what string) error {
	return fmt.Errorf("%s of %s %s: %w", what, q.scope, q, ErrUnsupported)
}

func (q *Query) String() string {
	switch v := q.value.(type) {
	case accessor.Field:
		return typeName(v.Owner) + "." + v.Name
	case accessor.Method:
		return typeName(v.Owner) + "." + v.Name + "()"
	case *accessor.Accessor:
		return v.String()
	}
	return "type " + typeName(q.typ)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" {
		return t.Name()
	}
	return strings.TrimPrefix(t.String(), "*")
}

func filter[V any](seq iter.Seq[V], p matcher.Predicate[any]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for v := range seq {
			if p.Matches(v) && !yield(v) {
				return
			}
		}
	}
}

func empty[V any](func(V) bool) {}
