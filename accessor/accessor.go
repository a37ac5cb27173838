// Package accessor builds and queries property trees.
//
// An Accessor describes one property of a type: where its value is stored,
// how it is read and written, which tags it carries and where it sits in the
// tree. Properties whose tags or declared type carry tag.Expand are expanded
// into the properties of their declared type, recursively, so a single root
// type yields a tree of dotted names such as "address.street".
//
// Descriptors are built once per type by a Registry and never change
// afterwards.
package accessor

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/ddddddO/gtree"

	"github.com/seitarof/gen-meta/tag"
)

// Accessor is one node of a property tree.
type Accessor struct {
	name  string
	local string

	// base is the type the field index and method names resolve on: the
	// type whose descriptor produced the node.
	base    reflect.Type
	owner   reflect.Type
	typ     reflect.Type
	generic reflect.Type

	field    reflect.StructField
	hasField bool
	getter   string
	setter   string
	read     func(owner any) any
	write    func(owner, value any)

	tags     []tag.Tag
	kinds    []reflect.Type
	position int

	level    int
	parent   *Accessor
	children []*Accessor
	byName   map[string]*Accessor
	leaf     bool

	id Identity
}

// Identity is the structural identity of an accessor. Two accessors with the
// same identity describe the same property reached by the same name, whatever
// tree they belong to.
type Identity struct {
	Declared reflect.Type
	Owner    reflect.Type
	Index    string
	Getter   string
	Setter   string
	Kinds    string
	Name     string
}

// Name returns the dotted name of the property, relative to the root type.
func (a *Accessor) Name() string { return a.name }

// LocalName returns the name of the property within its owner.
func (a *Accessor) LocalName() string { return a.local }

// Owner returns the type declaring the property.
func (a *Accessor) Owner() reflect.Type { return a.owner }

// Type returns the declared type, pointers removed.
func (a *Accessor) Type() reflect.Type { return a.typ }

// GenericType returns the exact type of the property.
func (a *Accessor) GenericType() reflect.Type { return a.generic }

// Field returns the storage field, if the property has one.
func (a *Accessor) Field() (reflect.StructField, bool) { return a.field, a.hasField }

// Getter returns the name of the read method, or "".
func (a *Accessor) Getter() string { return a.getter }

// Setter returns the name of the write method, or "".
func (a *Accessor) Setter() string { return a.setter }

// Tags returns the normalized tags of the property: storage field first,
// then write method, then read method.
func (a *Accessor) Tags() []tag.Tag { return slices.Clone(a.tags) }

// Kinds returns the distinct tag kinds carried by the property.
func (a *Accessor) Kinds() []reflect.Type { return slices.Clone(a.kinds) }

// HasKind reports whether the property carries a tag of kind.
func (a *Accessor) HasKind(kind reflect.Type) bool { return slices.Contains(a.kinds, kind) }

// Tag returns the first tag of kind. When none exists it returns nil, or
// ErrNotFound if required is set.
func (a *Accessor) Tag(kind reflect.Type, required bool) (tag.Tag, error) {
	for _, t := range a.tags {
		if tag.KindOf(t) == kind {
			return t, nil
		}
	}
	if required {
		return nil, fmt.Errorf("no tag of kind %s on %s: %w", kind, a, ErrNotFound)
	}
	return nil, nil
}

// Position returns the declared position, or tag.NoPosition.
func (a *Accessor) Position() int { return a.position }

// HasPosition reports whether a position was declared.
func (a *Accessor) HasPosition() bool { return a.position != tag.NoPosition }

// Level returns the depth of the node, 0 for roots.
func (a *Accessor) Level() int { return a.level }

// SetLevel overrides the depth of the node. The tree builder never calls it.
func (a *Accessor) SetLevel(level int) { a.level = level }

// Parent returns the parent node, nil for roots.
func (a *Accessor) Parent() *Accessor { return a.parent }

// IsRoot reports whether the node is at root level.
func (a *Accessor) IsRoot() bool { return a.level == 0 }

// Children returns the direct children in declaration order.
func (a *Accessor) Children() []*Accessor { return slices.Clone(a.children) }

// Child returns the direct child with the given local name.
func (a *Accessor) Child(name string) (*Accessor, bool) {
	c, ok := a.byName[name]
	return c, ok
}

// IsLeaf reports whether the property does not expand.
func (a *Accessor) IsLeaf() bool { return a.leaf }

// Identity returns the structural identity of the node.
func (a *Accessor) Identity() Identity { return a.id }

// Equal reports whether a and o are structurally equal.
func (a *Accessor) Equal(o *Accessor) bool {
	if a == nil || o == nil {
		return a == o
	}
	return a.id == o.id
}

func (a *Accessor) String() string {
	if a == nil {
		return "<nil>"
	}
	return typeName(a.owner) + ".acc." + a.name
}

// Expand yields the node followed by all its descendants, depth first.
func (a *Accessor) Expand() iter.Seq[*Accessor] {
	return func(yield func(*Accessor) bool) {
		a.expand(yield)
	}
}

func (a *Accessor) expand(yield func(*Accessor) bool) bool {
	if !yield(a) {
		return false
	}
	for _, c := range a.children {
		if !c.expand(yield) {
			return false
		}
	}
	return true
}

// Copy returns a copy of the node, and of its subtree, placed under parent.
func (a *Accessor) Copy(parent *Accessor) *Accessor {
	c := *a
	c.name = parent.name + "." + a.local
	c.level = parent.level + 1
	c.parent = parent
	c.children = nil
	c.byName = nil
	c.id = c.identity()
	if !a.leaf {
		c.associate(a.children)
	}
	return &c
}

func (a *Accessor) associate(children []*Accessor) {
	if a.byName == nil {
		a.byName = make(map[string]*Accessor, len(children))
	}
	for _, child := range children {
		c := child.Copy(a)
		a.children = append(a.children, c)
		a.byName[c.local] = c
	}
}

func (a *Accessor) identity() Identity {
	id := Identity{
		Declared: a.typ,
		Owner:    a.owner,
		Getter:   a.getter,
		Setter:   a.setter,
		Name:     a.name,
	}
	if a.hasField {
		id.Index = fmt.Sprint(a.field.Index)
	}
	names := make([]string, len(a.kinds))
	for i, k := range a.kinds {
		names[i] = kindName(k)
	}
	slices.Sort(names)
	id.Kinds = strings.Join(names, ",")
	return id
}

// kindName spells k with its full package path, so that kinds of packages
// sharing a name stay apart.
func kindName(k reflect.Type) string {
	if k.Kind() == reflect.Pointer {
		return "*" + kindName(k.Elem())
	}
	if k.Name() == "" || k.PkgPath() == "" {
		return k.String()
	}
	return k.PkgPath() + "." + k.Name()
}

// TreeString renders the subtree rooted at a.
func (a *Accessor) TreeString() string {
	root := gtree.NewRoot(a.label())
	a.addTree(root)

	var sb strings.Builder
	if err := gtree.OutputFromRoot(&sb, root); err != nil {
		return a.label()
	}
	return sb.String()
}

func (a *Accessor) addTree(node *gtree.Node) {
	for _, c := range a.children {
		c.addTree(node.Add(c.label()))
	}
}

func (a *Accessor) label() string {
	if a.parent == nil {
		return a.name + "(no parent)"
	}
	return a.name + "(parent=" + a.parent.name + ")"
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
