package accessor

import (
	"fmt"
	"reflect"
)

// Member is one entry of a static member table. Tables are usually written
// by gen-meta and registered from an init function, so that reads and writes
// go through compiled code instead of reflection.
type Member struct {
	// Name is the field name.
	Name string
	// Index is the field index path from the table's type.
	Index []int
	// Getter and Setter name the accessor methods Read and Write call, if any.
	Getter string
	Setter string
	// Read returns the property of owner, a pointer to the table's type.
	Read func(owner any) any
	// Write stores value into the property of owner.
	Write func(owner, value any)
}

// RegisterTable records the member table of t in the default registry.
func RegisterTable(t reflect.Type, members []Member) {
	defaultRegistry.RegisterTable(t, members)
}

// RegisterTable records the member table of t. Only the listed members
// become properties of t. A table registered after t was first described has
// no effect.
func (r *Registry) RegisterTable(t reflect.Type, members []Member) {
	t = indirect(t)
	r.tablesMu.Lock()
	defer r.tablesMu.Unlock()
	r.tables[t] = append([]Member(nil), members...)
}

func (r *Registry) table(t reflect.Type) ([]Member, bool) {
	r.tablesMu.RLock()
	defer r.tablesMu.RUnlock()
	m, ok := r.tables[t]
	return m, ok
}

// tableField resolves m against t.
func tableField(t reflect.Type, m Member) (Field, error) {
	if len(m.Index) == 0 {
		return Field{}, fmt.Errorf("member %q has no index", m.Name)
	}
	owner := t
	var f reflect.StructField
	for i, x := range m.Index {
		if owner.Kind() != reflect.Struct || x < 0 || x >= owner.NumField() {
			return Field{}, fmt.Errorf("member %q: index %v does not match %s", m.Name, m.Index, t)
		}
		f = owner.Field(x)
		if i < len(m.Index)-1 {
			if !f.Anonymous || f.Type.Kind() != reflect.Struct {
				return Field{}, fmt.Errorf("member %q: %s.%s is not an embedded struct", m.Name, typeName(owner), f.Name)
			}
			owner = f.Type
		}
	}
	if f.Name != m.Name {
		return Field{}, fmt.Errorf("member %q: index %v names field %q", m.Name, m.Index, f.Name)
	}
	f.Index = append([]int(nil), m.Index...)
	return Field{Owner: owner, StructField: f}, nil
}
