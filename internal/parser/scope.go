package parser

import (
	"go/types"
	"slices"
)

// fieldScope answers what generated code living in pkg may refer to.
type fieldScope struct {
	pkg *types.Package
}

func (s fieldScope) qualifier(p *types.Package) string {
	if p == nil || s.local(p) {
		return ""
	}
	return p.Name()
}

func (s fieldScope) local(p *types.Package) bool {
	return p != nil && s.pkg != nil && p.Path() == s.pkg.Path()
}

// visible reports whether a selector naming f compiles in pkg.
func (s fieldScope) visible(f *types.Var) bool {
	return f.Exported() || s.local(f.Pkg())
}

// refs returns the packages t refers to outside pkg, and whether t can be
// spelled in pkg at all.
func (s fieldScope) refs(t types.Type) (imports []string, nameable bool) {
	w := refWalker{scope: s, nameable: true}
	w.walk(t)
	slices.Sort(w.imports)
	return slices.Compact(w.imports), w.nameable
}

type refWalker struct {
	scope    fieldScope
	imports  []string
	nameable bool
}

func (w *refWalker) walk(t types.Type) {
	switch v := t.(type) {
	case *types.Basic:
	case *types.Alias:
		w.object(v.Obj())
		if args := v.TypeArgs(); args != nil {
			for i := 0; i < args.Len(); i++ {
				w.walk(args.At(i))
			}
		}
	case *types.Named:
		w.object(v.Obj())
		if args := v.TypeArgs(); args != nil {
			for i := 0; i < args.Len(); i++ {
				w.walk(args.At(i))
			}
		}
	case *types.Pointer:
		w.walk(v.Elem())
	case *types.Slice:
		w.walk(v.Elem())
	case *types.Array:
		w.walk(v.Elem())
	case *types.Chan:
		w.walk(v.Elem())
	case *types.Map:
		w.walk(v.Key())
		w.walk(v.Elem())
	case *types.Signature:
		w.tuple(v.Params())
		w.tuple(v.Results())
	case *types.Struct:
		for i := 0; i < v.NumFields(); i++ {
			f := v.Field(i)
			if !w.scope.visible(f) {
				w.nameable = false
			}
			w.walk(f.Type())
		}
	case *types.Interface:
		for i := 0; i < v.NumExplicitMethods(); i++ {
			m := v.ExplicitMethod(i)
			if !m.Exported() && !w.scope.local(m.Pkg()) {
				w.nameable = false
			}
			w.walk(m.Type())
		}
		for i := 0; i < v.NumEmbeddeds(); i++ {
			w.walk(v.EmbeddedType(i))
		}
	default:
		// type parameters and anything newer
		w.nameable = false
	}
}

func (w *refWalker) tuple(t *types.Tuple) {
	for i := 0; i < t.Len(); i++ {
		w.walk(t.At(i).Type())
	}
}

func (w *refWalker) object(obj *types.TypeName) {
	pkg := obj.Pkg()
	if pkg == nil || w.scope.local(pkg) {
		return
	}
	if !obj.Exported() {
		w.nameable = false
		return
	}
	w.imports = append(w.imports, pkg.Path())
}
