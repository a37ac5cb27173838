package accessor

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/seitarof/gen-meta/tag"
)

// Descriptor is everything known about one type: its members, its type
// level tags and its property tree.
type Descriptor struct {
	typ     reflect.Type
	tagKind bool
	tags    []tag.Tag
	fields  []Field
	methods []Method

	roots  []*Accessor
	all    []*Accessor
	byName map[string]*Accessor
	byKind map[reflect.Type][]Field
	depth  int
}

// Type returns the described type.
func (d *Descriptor) Type() reflect.Type { return d.typ }

// IsTagKind reports whether the type is a tag kind, whose properties are
// its attribute methods.
func (d *Descriptor) IsTagKind() bool { return d.tagKind }

// Tags returns the type level tags, those of embedded structs included.
func (d *Descriptor) Tags() []tag.Tag { return slices.Clone(d.tags) }

// Fields returns the structural members, promoted ones included.
func (d *Descriptor) Fields() []Field { return slices.Clone(d.fields) }

// Field returns the structural member called name.
func (d *Descriptor) Field(name string) (Field, error) {
	for _, f := range d.fields {
		if f.Name == name {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("field %q of %s: %w", name, d.typ, ErrNotFound)
}

// Methods returns the methods callable on an addressable value of the type.
func (d *Descriptor) Methods() []Method { return slices.Clone(d.methods) }

// Roots returns the root level accessors in declaration order.
func (d *Descriptor) Roots() []*Accessor { return slices.Clone(d.roots) }

// Accessors returns every node of the property tree, depth first.
func (d *Descriptor) Accessors() []*Accessor { return slices.Clone(d.all) }

// Accessor returns the node with the given dotted name.
func (d *Descriptor) Accessor(name string) (*Accessor, error) {
	a, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("accessor %q of %s: %w", name, d.typ, ErrNotFound)
	}
	return a, nil
}

// WithKind returns the root level fields carrying a tag of kind.
func (d *Descriptor) WithKind(kind reflect.Type) []Field {
	return slices.Clone(d.byKind[kind])
}

// Len returns the number of nodes in the property tree.
func (d *Descriptor) Len() int { return len(d.all) }

func (d *Descriptor) String() string { return "descriptor of " + d.typ.String() }
