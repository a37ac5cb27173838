package accessor

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/seitarof/gen-meta/tag"
)

// Registry builds descriptors and caches them for its lifetime. Each type is
// built at most once; concurrent first requests wait for the build in
// progress. Failed builds are not cached.
type Registry struct {
	log      *zap.Logger
	decls    *tag.Declarations
	parsers  *tag.Parsers
	maxDepth int

	descriptors sync.Map // reflect.Type -> *Descriptor

	tablesMu sync.RWMutex
	tables   map[reflect.Type][]Member

	mu       sync.Mutex // serialises builds
	building []reflect.Type
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithDeclarations sets where programmatic tag declarations are looked up.
func WithDeclarations(d *tag.Declarations) Option {
	return func(r *Registry) {
		if d != nil {
			r.decls = d
		}
	}
}

// WithParsers sets the parsers used for struct tags.
func WithParsers(p *tag.Parsers) Option {
	return func(r *Registry) {
		if p != nil {
			r.parsers = p
		}
	}
}

// WithMaxDepth limits the number of levels of a property tree. Zero means
// no limit.
func WithMaxDepth(n int) Option {
	return func(r *Registry) { r.maxDepth = n }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		log:     zap.NewNop(),
		decls:   tag.DefaultDeclarations(),
		parsers: tag.DefaultParsers(),
		tables:  map[reflect.Type][]Member{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// Of returns the descriptor of t from the default registry.
func Of(t reflect.Type) (*Descriptor, error) { return defaultRegistry.Of(t) }

// For returns the descriptor of T from the default registry.
func For[T any]() (*Descriptor, error) { return defaultRegistry.Of(reflect.TypeFor[T]()) }

// Of returns the descriptor of t, building it on first use. Pointer types
// are described by their element type.
func (r *Registry) Of(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, errors.New("accessor: nil type")
	}
	t = indirect(t)
	if d, ok := r.descriptors.Load(t); ok {
		return d.(*Descriptor), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.describe(t)
}

// describe is Of with r.mu held.
func (r *Registry) describe(t reflect.Type) (*Descriptor, error) {
	if d, ok := r.descriptors.Load(t); ok {
		return d.(*Descriptor), nil
	}
	if slices.Contains(r.building, t) {
		return nil, &BuildError{Type: t, Err: fmt.Errorf("%w: %s", ErrCycle, r.buildPath(t))}
	}
	r.building = append(r.building, t)
	defer func() { r.building = r.building[:len(r.building)-1] }()

	d, err := r.build(t)
	if err != nil {
		var be *BuildError
		if errors.As(err, &be) && be.Type == t {
			return nil, err
		}
		return nil, &BuildError{Type: t, Err: err}
	}
	r.descriptors.Store(t, d)
	r.log.Debug("descriptor built",
		zap.Stringer("type", t),
		zap.Int("roots", len(d.roots)),
		zap.Int("accessors", len(d.all)),
		zap.Int("depth", d.depth),
	)
	return d, nil
}

func (r *Registry) buildPath(t reflect.Type) string {
	parts := make([]string, 0, len(r.building)+1)
	for _, b := range r.building {
		parts = append(parts, typeName(b))
	}
	parts = append(parts, typeName(t))
	return strings.Join(parts, " -> ")
}

func (r *Registry) build(t reflect.Type) (*Descriptor, error) {
	typeTags, err := r.typeTags(t)
	if err != nil {
		return nil, err
	}
	d := &Descriptor{
		typ:     t,
		tagKind: tag.IsKind(t),
		tags:    typeTags,
		fields:  flattenFields(t),
		methods: methodsOf(t),
		byName:  map[string]*Accessor{},
		byKind:  map[reflect.Type][]Field{},
	}

	if d.tagKind {
		for _, m := range behaviorMembers(t) {
			a, err := r.behaviorAccessor(t, m)
			if err != nil {
				return nil, err
			}
			d.roots = append(d.roots, a)
		}
	} else if members, ok := r.table(t); ok {
		d.fields = nil
		for _, m := range members {
			f, err := tableField(t, m)
			if err != nil {
				return nil, err
			}
			a, err := r.fieldAccessor(t, f, &m)
			if err != nil {
				return nil, err
			}
			d.fields = append(d.fields, f)
			d.roots = append(d.roots, a)
		}
	} else {
		for _, f := range d.fields {
			a, err := r.fieldAccessor(t, f, nil)
			if err != nil {
				return nil, err
			}
			d.roots = append(d.roots, a)
		}
	}

	for _, root := range d.roots {
		if root.hasField {
			for _, k := range root.kinds {
				d.byKind[k] = append(d.byKind[k], Field{Owner: root.owner, StructField: root.field})
			}
		}
		for n := range root.Expand() {
			d.all = append(d.all, n)
			d.byName[n.name] = n
			d.depth = max(d.depth, n.level+1)
		}
	}
	if r.maxDepth > 0 && d.depth > r.maxDepth {
		return nil, fmt.Errorf("%w: %d levels, limit %d", ErrDepth, d.depth, r.maxDepth)
	}
	return d, nil
}

// fieldAccessor builds the root accessor of field f of t. m, when not nil,
// supplies compiled read and write paths.
func (r *Registry) fieldAccessor(t reflect.Type, f Field, m *Member) (*Accessor, error) {
	a := &Accessor{
		name:     f.Name,
		local:    f.Name,
		base:     t,
		owner:    f.Owner,
		typ:      indirect(f.Type),
		generic:  f.Type,
		field:    f.StructField,
		hasField: true,
	}
	if m != nil {
		a.getter, a.setter = m.Getter, m.Setter
		a.read, a.write = m.Read, m.Write
	} else {
		a.getter, a.setter = accessorMethods(t, f.StructField)
	}

	raw, err := r.parsers.ParseStructTag(f.Tag)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", f.Name, err)
	}
	raw = append(raw, r.declared(f.Name, f.Owner)...)
	if a.setter != "" {
		raw = append(raw, r.declared(a.setter, t, f.Owner)...)
	}
	if a.getter != "" {
		raw = append(raw, r.declared(a.getter, t, f.Owner)...)
	}
	if err := r.finish(a, raw); err != nil {
		return nil, err
	}
	return a, nil
}

// behaviorAccessor builds the read-only accessor of an attribute of tag
// kind t.
func (r *Registry) behaviorAccessor(t reflect.Type, m Method) (*Accessor, error) {
	out := m.Type.Out(0)
	a := &Accessor{
		name:    m.Name,
		local:   m.Name,
		base:    t,
		owner:   t,
		typ:     indirect(out),
		generic: out,
		getter:  m.Name,
	}
	if err := r.finish(a, r.declared(m.Name, t)); err != nil {
		return nil, err
	}
	return a, nil
}

// finish derives everything that follows from the tags of a and expands it.
func (r *Registry) finish(a *Accessor, raw []tag.Tag) error {
	a.tags = tag.Normalize(raw)
	a.position = tag.NoPosition
	for _, t := range a.tags {
		if k := tag.KindOf(t); !slices.Contains(a.kinds, k) {
			a.kinds = append(a.kinds, k)
		}
		if p, ok := t.(tag.Position); ok && a.position == tag.NoPosition {
			a.position = p.Value()
		}
	}

	expand := tag.Has(a.tags, reflect.TypeFor[tag.Expand]())
	if !expand {
		declTags, err := r.typeTags(a.typ)
		if err != nil {
			return err
		}
		expand = tag.Has(declTags, reflect.TypeFor[tag.Expand]())
	}
	a.leaf = !expand
	a.id = a.identity()
	if a.leaf {
		return nil
	}

	child, err := r.describe(a.typ)
	if err != nil {
		return err
	}
	a.associate(child.roots)
	r.log.Debug("children associated",
		zap.Stringer("accessor", a),
		zap.Stringer("type", a.typ),
		zap.Int("children", len(a.children)),
	)
	copied := -1
	for range a.Expand() {
		copied++
	}
	r.log.Debug("subtree copied",
		zap.Stringer("accessor", a),
		zap.Int("nodes", copied),
	)
	return nil
}

// declared collects the tags declared on member of each distinct type.
func (r *Registry) declared(member string, types ...reflect.Type) []tag.Tag {
	var out []tag.Tag
	for i, t := range types {
		if slices.Contains(types[:i], t) {
			continue
		}
		out = append(out, r.decls.Lookup(t, member)...)
	}
	return out
}

// typeTags returns the normalized type level tags of t and of the structs
// it embeds.
func (r *Registry) typeTags(t reflect.Type) ([]tag.Tag, error) {
	raw, err := r.rawTypeTags(t)
	if err != nil {
		return nil, err
	}
	return tag.Normalize(raw), nil
}

func (r *Registry) rawTypeTags(t reflect.Type) ([]tag.Tag, error) {
	var out []tag.Tag
	for _, f := range blankFields(t) {
		tags, err := r.parsers.ParseStructTag(f.Tag)
		if err != nil {
			return nil, fmt.Errorf("type tags of %s: %w", t, err)
		}
		out = append(out, tags...)
	}
	out = append(out, r.decls.Lookup(t, tag.TypeLevel)...)
	for _, e := range embeddedStructs(t) {
		tags, err := r.rawTypeTags(e)
		if err != nil {
			return nil, err
		}
		out = append(out, tags...)
	}
	return out, nil
}

// FieldTags returns the normalized tags declared on f itself, without those
// of its accessor methods.
func (r *Registry) FieldTags(f Field) ([]tag.Tag, error) {
	raw, err := r.parsers.ParseStructTag(f.Tag)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", f.Name, err)
	}
	raw = append(raw, r.declared(f.Name, f.Owner)...)
	return tag.Normalize(raw), nil
}

// MethodTags returns the normalized tags declared on m.
func (r *Registry) MethodTags(m Method) []tag.Tag {
	return tag.Normalize(r.declared(m.Name, m.Owner))
}
