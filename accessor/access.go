package accessor

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

// Get reads the property from root. root is a value or a pointer to a value
// of the root type of the tree. When an ancestor of the property is absent
// Get returns nil without error, as it does for nil pointers, maps, slices,
// interfaces, funcs and chans.
func (a *Accessor) Get(root any) (out any, err error) {
	defer a.recoverInto("get", &err)

	rv, err := a.rootValue(root, false)
	if err != nil {
		return nil, &AccessError{Accessor: a, Op: "get", Err: err}
	}
	v, err := a.value(rv)
	if err != nil {
		return nil, &AccessError{Accessor: a, Op: "get", Err: err}
	}
	if absent(v) {
		return nil, nil
	}
	return v.Interface(), nil
}

// Set writes value into the property of root, which must be a non-nil
// pointer. Absent ancestors are created on the way down. A nil value writes
// the zero value of the property.
func (a *Accessor) Set(root, value any) (err error) {
	defer a.recoverInto("set", &err)

	rv, err := a.rootValue(root, true)
	if err != nil {
		return &AccessError{Accessor: a, Op: "set", Err: err}
	}
	val, err := a.assignable(value)
	if err != nil {
		return err
	}
	if err := a.setValue(rv, val); err != nil {
		return &AccessError{Accessor: a, Op: "set", Err: err}
	}
	return nil
}

// GetAs reads the property as a V. It returns def when the property is
// absent and a *TypeError when the value is not a V.
func GetAs[V any](a *Accessor, root any, def V) (V, error) {
	var zero V
	v, err := a.Get(root)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return def, nil
	}
	typed, ok := v.(V)
	if !ok {
		return zero, &TypeError{Accessor: a, Expected: reflect.TypeFor[V](), Actual: reflect.TypeOf(v)}
	}
	return typed, nil
}

// GetAsType is GetAs for a type known only at run time.
func (a *Accessor) GetAsType(root any, expected reflect.Type, def any) (any, error) {
	v, err := a.Get(root)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return def, nil
	}
	if actual := reflect.TypeOf(v); !actual.AssignableTo(expected) {
		return nil, &TypeError{Accessor: a, Expected: expected, Actual: actual}
	}
	return v, nil
}

// NewInstance stores a freshly initialised value of the property's type into
// root, creating absent ancestors, and returns it.
func (a *Accessor) NewInstance(root any) (out any, err error) {
	defer a.recoverInto("new", &err)

	rv, err := a.rootValue(root, true)
	if err != nil {
		return nil, &AccessError{Accessor: a, Op: "new", Err: err}
	}
	v, err := a.newInstance(rv)
	if err != nil {
		return nil, &AccessError{Accessor: a, Op: "new", Err: err}
	}
	return v.Interface(), nil
}

func (a *Accessor) recoverInto(op string, err *error) {
	if r := recover(); r != nil {
		*err = &AccessError{Accessor: a, Op: op, Err: fmt.Errorf("%v", r)}
	}
}

// rootValue returns an addressable value of the root type.
func (a *Accessor) rootValue(root any, forWrite bool) (reflect.Value, error) {
	want := a.rootType()
	if root == nil {
		return reflect.Value{}, errors.New("nil root")
	}
	rv := reflect.ValueOf(root)
	if forWrite && rv.Kind() != reflect.Pointer {
		return reflect.Value{}, fmt.Errorf("root must be a pointer, got %s", rv.Type())
	}
	for rv.Kind() == reflect.Pointer && rv.Type() != want {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("nil root %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Type() != want {
		return reflect.Value{}, fmt.Errorf("%w: root is %s, want %s", ErrTypeMismatch, rv.Type(), want)
	}
	if !rv.CanAddr() {
		c := reflect.New(rv.Type()).Elem()
		c.Set(rv)
		rv = c
	}
	return rv, nil
}

func (a *Accessor) rootType() reflect.Type {
	r := a
	for r.parent != nil {
		r = r.parent
	}
	return r.base
}

func (a *Accessor) assignable(value any) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(a.generic), nil
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(a.generic) {
		return reflect.Value{}, &TypeError{Accessor: a, Expected: a.generic, Actual: v.Type()}
	}
	return v, nil
}

// value reads the property without creating anything. The zero Value means
// an ancestor is absent.
func (a *Accessor) value(root reflect.Value) (reflect.Value, error) {
	obj, _, err := a.levelObject(root, false)
	if err != nil || !obj.IsValid() {
		return reflect.Value{}, err
	}
	return a.readFrom(obj)
}

func (a *Accessor) setValue(root, val reflect.Value) error {
	obj, copied, err := a.levelObject(root, true)
	if err != nil {
		return err
	}
	if err := a.writeTo(obj, val); err != nil {
		return err
	}
	if copied {
		// the parent handed out a copy; store it back
		return a.parent.setValue(root, obj)
	}
	return nil
}

func (a *Accessor) newInstance(root reflect.Value) (reflect.Value, error) {
	inst, err := instantiate(a.generic)
	if err != nil {
		return reflect.Value{}, err
	}
	if err := a.setValue(root, inst); err != nil {
		return reflect.Value{}, err
	}
	v, err := a.value(root)
	if err != nil {
		return reflect.Value{}, err
	}
	if absent(v) {
		return reflect.Value{}, fmt.Errorf("%s is still absent after initialisation", a)
	}
	return v, nil
}

// levelObject resolves the value holding the property: root for root
// properties, the parent's value otherwise. With create set, absent
// ancestors are initialised and stored first. copied reports that the
// returned value is a private copy the caller must store back.
func (a *Accessor) levelObject(root reflect.Value, create bool) (obj reflect.Value, copied bool, err error) {
	if a.parent == nil {
		return root, false, nil
	}
	v, err := a.parent.value(root)
	if err != nil {
		return reflect.Value{}, false, err
	}
	if v = indirectValue(v); !v.IsValid() {
		if !create {
			return reflect.Value{}, false, nil
		}
		if v, err = a.parent.newInstance(root); err != nil {
			return reflect.Value{}, false, err
		}
		if v = indirectValue(v); !v.IsValid() {
			return reflect.Value{}, false, fmt.Errorf("%s is still absent after initialisation", a.parent)
		}
	}
	if v.Type() != a.base {
		return reflect.Value{}, false, fmt.Errorf("%s holds a %s, want %s", a.parent, v.Type(), a.base)
	}
	if !v.CanAddr() {
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		return c, true, nil
	}
	return v, false, nil
}

func (a *Accessor) readFrom(obj reflect.Value) (reflect.Value, error) {
	switch {
	case a.read != nil:
		out := a.read(obj.Addr().Interface())
		if out == nil {
			return reflect.Zero(a.generic), nil
		}
		return reflect.ValueOf(out), nil
	case a.getter != "":
		m := obj.Addr().MethodByName(a.getter)
		if !m.IsValid() {
			return reflect.Value{}, fmt.Errorf("method %s not found on %s", a.getter, obj.Type())
		}
		return m.Call(nil)[0], nil
	case a.hasField:
		return fieldByIndex(obj, a.field.Index), nil
	}
	return reflect.Value{}, fmt.Errorf("%s has no read path", a)
}

func (a *Accessor) writeTo(obj, val reflect.Value) error {
	switch {
	case a.write != nil:
		a.write(obj.Addr().Interface(), val.Interface())
	case a.setter != "":
		m := obj.Addr().MethodByName(a.setter)
		if !m.IsValid() {
			return fmt.Errorf("method %s not found on %s", a.setter, obj.Type())
		}
		m.Call([]reflect.Value{val})
	case a.hasField:
		fieldByIndex(obj, a.field.Index).Set(val)
	default:
		return ErrReadOnly
	}
	return nil
}

// fieldByIndex walks index from an addressable struct. Fields that are not
// exported are reached through their address.
func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for _, i := range index {
		v = v.Field(i)
	}
	if !v.CanInterface() || !v.CanSet() {
		v = reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	}
	return v
}

// instantiate returns a usable value of t: pointers point to fresh zero
// values, maps are empty but non-nil.
func instantiate(t reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Pointer:
		p := reflect.New(t.Elem())
		if t.Elem().Kind() == reflect.Pointer || t.Elem().Kind() == reflect.Map {
			inner, err := instantiate(t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			p.Elem().Set(inner)
		}
		return p, nil
	case reflect.Map:
		return reflect.MakeMap(t), nil
	case reflect.Interface:
		return reflect.Value{}, fmt.Errorf("cannot instantiate interface type %s", t)
	}
	return reflect.New(t).Elem(), nil
}

// indirectValue follows pointers and interfaces. It returns the zero Value
// when it meets a nil.
func indirectValue(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func absent(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
