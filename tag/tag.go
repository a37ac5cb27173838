// Package tag models declarative metadata attached to types and their members.
//
// A tag is any value implementing Tag. Its kind is its dynamic type, and its
// attributes are the kind's exported zero-argument methods (Value, View, ...).
// Tags reach a type either through the `meta` struct tag key or through
// programmatic declarations (see Declare).
package tag

import (
	"reflect"
	"slices"
)

// Key is the struct tag key holding member and type level tags.
const Key = "meta"

// NoPosition is the position of a member that declares none.
const NoPosition = -1

// DefaultView is the view attribute value that matches every requested view.
const DefaultView = "default"

// Tag is a named, immutable bag of attributes.
type Tag interface {
	TagName() string
}

var tagType = reflect.TypeFor[Tag]()

// Type returns the reflect.Type of the Tag interface.
func Type() reflect.Type { return tagType }

// KindOf returns the kind of t.
func KindOf(t Tag) reflect.Type {
	if t == nil {
		return nil
	}
	return reflect.TypeOf(t)
}

// IsKind reports whether typ declares a tag kind. A type whose pointer
// implements Tag declares the kind of that pointer.
func IsKind(typ reflect.Type) bool {
	if typ == nil || typ.Kind() == reflect.Interface {
		return false
	}
	if typ.Implements(tagType) {
		return true
	}
	return typ.Kind() != reflect.Pointer && reflect.PointerTo(typ).Implements(tagType)
}

// Position orders a member among its siblings.
type Position int

func (Position) TagName() string { return "position" }

// Value returns the declared position.
func (p Position) Value() int { return int(p) }

// Expand marks a member, or every member of a type, as expandable into the
// property tree of its declared type.
type Expand struct{}

func (Expand) TagName() string { return "expand" }

// Extends marks a tag kind as an extension of one or more base kinds.
type Extends struct {
	Bases []reflect.Type
}

func (Extends) TagName() string { return "extends" }

// Value returns the base kinds.
func (e Extends) Value() []reflect.Type { return e.Bases }

// Repeated is the container produced when one tag name is declared more than
// once on the same element.
type Repeated struct {
	Name string
	Tags []Tag
}

func (r Repeated) TagName() string { return r.Name }

// Value returns the contained tags.
func (r Repeated) Value() []Tag { return r.Tags }

// Filter returns the tags of the given kind, in order.
func Filter(tags []Tag, kind reflect.Type) []Tag {
	var out []Tag
	for _, t := range tags {
		if KindOf(t) == kind {
			out = append(out, t)
		}
	}
	return out
}

// Has reports whether tags contain a tag of the given kind.
func Has(tags []Tag, kind reflect.Type) bool {
	return slices.ContainsFunc(tags, func(t Tag) bool { return KindOf(t) == kind })
}
