package tag

import (
	"reflect"
	"slices"
	"sync"
)

// TypeLevel is the member name under which type level tags are declared.
const TypeLevel = ""

type declKey struct {
	typ    reflect.Type
	member string
}

// Declarations holds tags attached in code rather than through struct tags.
// It is the only way to tag a method, and the usual way to attach tags whose
// attributes cannot be spelled in a struct tag.
type Declarations struct {
	mu   sync.RWMutex
	tags map[declKey][]Tag
}

// NewDeclarations returns an empty registry.
func NewDeclarations() *Declarations {
	return &Declarations{tags: map[declKey][]Tag{}}
}

var defaultDeclarations = NewDeclarations()

// DefaultDeclarations returns the process-wide declaration registry.
func DefaultDeclarations() *Declarations { return defaultDeclarations }

// Declare attaches tags to member of typ in the default registry.
func Declare(typ reflect.Type, member string, tags ...Tag) {
	defaultDeclarations.Declare(typ, member, tags...)
}

// Declare attaches tags to member of typ. member is a field name, a method
// name, or TypeLevel. Pointer types are normalised to their element type.
func (d *Declarations) Declare(typ reflect.Type, member string, tags ...Tag) {
	typ = indirect(typ)
	d.mu.Lock()
	defer d.mu.Unlock()
	k := declKey{typ: typ, member: member}
	d.tags[k] = append(d.tags[k], tags...)
}

// Lookup returns the tags declared on member of typ, in declaration order.
func (d *Declarations) Lookup(typ reflect.Type, member string) []Tag {
	typ = indirect(typ)
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.tags[declKey{typ: typ, member: member}])
}

func indirect(typ reflect.Type) reflect.Type {
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}
