// Package annotator answers questions about the tags attached to types,
// fields, methods, accessors and tags themselves through one uniform Query.
//
//	q, err := annotator.Of(reflect.TypeFor[User]())
//	for f := range q.FieldsThat(annotator.HaveTag(reflect.TypeFor[Column]())) {
//		...
//	}
package annotator

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/seitarof/gen-meta/accessor"
	"github.com/seitarof/gen-meta/tag"
)

// ErrUnsupported is returned by lookups that make no sense for the queried
// value, such as the fields of a field.
var ErrUnsupported = errors.New("unsupported query")

// Annotator hands out queries. Queries are cached: asking twice about the
// same type, member or accessor returns the same *Query.
type Annotator struct {
	reg *accessor.Registry
	log *zap.Logger

	types     sync.Map // reflect.Type -> *Query
	fields    sync.Map // memberKey -> *Query
	methods   sync.Map // memberKey -> *Query
	accessors sync.Map // accessor.Identity -> *Query
}

type memberKey struct {
	owner reflect.Type
	name  string
	index string
}

// Option configures an Annotator.
type Option func(*Annotator)

// WithLogger sets the logger used for query diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(an *Annotator) {
		if l != nil {
			an.log = l
		}
	}
}

// New returns an annotator reading descriptors from reg, or from the default
// registry when reg is nil.
func New(reg *accessor.Registry, opts ...Option) *Annotator {
	if reg == nil {
		reg = accessor.Default()
	}
	an := &Annotator{reg: reg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(an)
	}
	return an
}

var defaultAnnotator = New(nil)

// Default returns the annotator backed by the default registry.
func Default() *Annotator { return defaultAnnotator }

// Of returns a query about v from the default annotator.
func Of(v any) (*Query, error) { return defaultAnnotator.Of(v) }

// Registry returns the registry descriptors are read from.
func (an *Annotator) Registry() *accessor.Registry { return an.reg }

// Of returns the query about v. v is an *accessor.Accessor, an
// accessor.Field, an accessor.Method, a tag (queried through its kind), a
// reflect.Type, or any other value, queried through its dynamic type.
func (an *Annotator) Of(v any) (*Query, error) {
	switch x := v.(type) {
	case nil:
		return nil, errors.New("annotator: nil value")
	case *accessor.Accessor:
		if x == nil {
			return nil, errors.New("annotator: nil accessor")
		}
		return an.ofAccessor(x), nil
	case accessor.Field:
		return an.ofField(x)
	case accessor.Method:
		return an.ofMethod(x), nil
	case tag.Tag:
		return an.ofType(tag.KindOf(x))
	case reflect.Type:
		return an.ofType(x)
	default:
		return an.ofType(reflect.TypeOf(v))
	}
}

func (an *Annotator) ofType(t reflect.Type) (*Query, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if q, ok := an.types.Load(t); ok {
		return q.(*Query), nil
	}
	d, err := an.reg.Of(t)
	if err != nil {
		return nil, err
	}
	q := &Query{an: an, scope: TypeScope, value: t, typ: t, desc: d, tags: d.Tags()}
	return an.store(&an.types, t, q), nil
}

func (an *Annotator) ofField(f accessor.Field) (*Query, error) {
	key := memberKey{owner: f.Owner, name: f.Name, index: fmt.Sprint(f.Index)}
	if q, ok := an.fields.Load(key); ok {
		return q.(*Query), nil
	}
	tags, err := an.reg.FieldTags(f)
	if err != nil {
		return nil, err
	}
	q := &Query{an: an, scope: FieldScope, value: f, typ: f.Owner, tags: tags}
	return an.store(&an.fields, key, q), nil
}

func (an *Annotator) ofMethod(m accessor.Method) *Query {
	key := memberKey{owner: m.Owner, name: m.Name}
	if q, ok := an.methods.Load(key); ok {
		return q.(*Query)
	}
	q := &Query{an: an, scope: MethodScope, value: m, typ: m.Owner, tags: an.reg.MethodTags(m)}
	return an.store(&an.methods, key, q)
}

func (an *Annotator) ofAccessor(a *accessor.Accessor) *Query {
	key := a.Identity()
	if q, ok := an.accessors.Load(key); ok {
		return q.(*Query)
	}
	q := &Query{an: an, scope: AccessorScope, value: a, typ: a.Owner(), tags: a.Tags()}
	return an.store(&an.accessors, key, q)
}

func (an *Annotator) store(cache *sync.Map, key any, q *Query) *Query {
	actual, loaded := cache.LoadOrStore(key, q)
	if !loaded {
		an.log.Debug("query created", zap.Stringer("query", q), zap.Int("tags", len(q.tags)))
	}
	return actual.(*Query)
}
