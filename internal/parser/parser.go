package parser

import (
	"fmt"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

// Parser extracts struct metadata from Go packages.
type Parser interface {
	Parse(pkgPath string, typeName string) (*StructInfo, error)
	ParseRecursive(pkgPath string, typeName string) ([]*StructInfo, error)
}

type parserImpl struct {
	log *zap.Logger
}

// Option configures the parser.
type Option func(*parserImpl)

// WithLogger sets the logger warnings are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(p *parserImpl) {
		if l != nil {
			p.log = l
		}
	}
}

// New returns default parser.
func New(opts ...Option) Parser {
	p := &parserImpl{log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *parserImpl) Parse(pkgPath string, typeName string) (*StructInfo, error) {
	cache := map[string]*packages.Package{}
	return p.parseWithCache(pkgPath, typeName, cache)
}

func (p *parserImpl) parseWithCache(
	pkgPath string,
	typeName string,
	cache map[string]*packages.Package,
) (*StructInfo, error) {
	pkg, err := p.loadPackage(pkgPath, cache)
	if err != nil {
		return nil, err
	}

	if pkg.Types == nil || pkg.Types.Scope() == nil {
		return nil, fmt.Errorf("type info unavailable for package %q", pkgPath)
	}

	obj := pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		return nil, fmt.Errorf("struct %q not found in package %q", typeName, pkgPath)
	}

	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%q in package %q is not a named type", typeName, pkgPath)
	}
	if named.TypeParams().Len() > 0 {
		return nil, fmt.Errorf("%q in package %q is generic", typeName, pkgPath)
	}
	st, ok := extractStructType(named)
	if !ok {
		return nil, fmt.Errorf("%q in package %q is not a struct type", typeName, pkgPath)
	}

	fields := flattenFields(st, fieldScope{pkg: pkg.Types})
	methods := types.NewMethodSet(types.NewPointer(named))
	for i := range fields {
		fields[i].Getter, fields[i].Setter = accessorMethods(methods, fields[i])
	}

	return &StructInfo{
		Name:    typeName,
		PkgPath: pkg.Types.Path(),
		PkgName: pkg.Name,
		Fields:  fields,
	}, nil
}

func (p *parserImpl) loadPackage(pkgPath string, cache map[string]*packages.Package) (*packages.Package, error) {
	if cached, ok := cache[pkgPath]; ok {
		return cached, nil
	}

	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedModule,
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pkgPath, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("package %q has compilation errors", pkgPath)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", pkgPath)
	}
	cache[pkgPath] = pkgs[0]
	return pkgs[0], nil
}

// ParseRecursive parses typeName and every struct of the same package its
// fields refer to, dependencies first. Generated tables can only reach into
// their own package, so other packages are not followed.
func (p *parserImpl) ParseRecursive(pkgPath string, typeName string) ([]*StructInfo, error) {
	visited := map[string]bool{}
	cache := map[string]*packages.Package{}

	result := []*StructInfo{}
	if err := p.parseRec(pkgPath, typeName, visited, cache, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *parserImpl) parseRec(
	pkgPath string,
	typeName string,
	visited map[string]bool,
	cache map[string]*packages.Package,
	result *[]*StructInfo,
) error {
	info, err := p.parseWithCache(pkgPath, typeName, cache)
	if err != nil {
		return err
	}

	key := info.PkgPath + "." + info.Name
	if visited[key] {
		return nil
	}
	visited[key] = true

	for _, f := range info.Fields {
		nestedPkg, nestedName, ok := nestedStructRef(f.TypeInfo)
		if !ok {
			continue
		}
		if !shouldRecurseNestedPackage(nestedPkg, info.PkgPath) {
			continue
		}
		if visited[nestedPkg+"."+nestedName] {
			continue
		}
		if err := p.parseRec(nestedPkg, nestedName, visited, cache, result); err != nil {
			p.log.Warn("nested struct skipped", zap.String("struct", nestedName), zap.Error(err))
			continue
		}
	}

	*result = append(*result, info)
	return nil
}

// accessorMethods finds Get<Name> and Set<Name> in the pointer method set,
// with the exact signatures the accessor package accepts.
func accessorMethods(methods *types.MethodSet, f FieldInfo) (getter, setter string) {
	name := capitalize(f.Name)
	if sig, ok := methodSignature(methods, "Get"+name); ok {
		if sig.Params().Len() == 0 && sig.Results().Len() == 1 && types.Identical(sig.Results().At(0).Type(), f.Type) {
			getter = "Get" + name
		}
	}
	if sig, ok := methodSignature(methods, "Set"+name); ok {
		if sig.Params().Len() == 1 && sig.Results().Len() == 0 && types.Identical(sig.Params().At(0).Type(), f.Type) {
			setter = "Set" + name
		}
	}
	return getter, setter
}

func methodSignature(methods *types.MethodSet, name string) (*types.Signature, bool) {
	sel := methods.Lookup(nil, name)
	if sel == nil {
		return nil, false
	}
	sig, ok := sel.Type().(*types.Signature)
	return sig, ok && !sig.Variadic()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func extractStructType(t types.Type) (*types.Struct, bool) {
	switch v := t.(type) {
	case *types.Alias:
		return extractStructType(v.Rhs())
	case *types.Named:
		return extractStructType(v.Underlying())
	case *types.Struct:
		return v, true
	default:
		return nil, false
	}
}

func nestedStructRef(detail TypeDetail) (pkgPath string, structName string, ok bool) {
	switch detail.Kind {
	case TypeKindStruct:
		if detail.PkgPath == "" || detail.StructName == "" {
			return "", "", false
		}
		return detail.PkgPath, detail.StructName, true
	case TypeKindPointer, TypeKindSlice:
		if detail.ElemType == nil {
			return "", "", false
		}
		return nestedStructRef(*detail.ElemType)
	default:
		return "", "", false
	}
}

func shouldRecurseNestedPackage(nestedPkgPath, currentPkgPath string) bool {
	return nestedPkgPath != "" && nestedPkgPath == currentPkgPath
}

func analyzeType(t types.Type) TypeDetail {
	switch v := t.(type) {
	case *types.Alias:
		return analyzeType(v.Rhs())
	case *types.Basic:
		return TypeDetail{
			Kind:      TypeKindBasic,
			IsBasic:   true,
			BasicKind: v.Name(),
			TypeName:  v.Name(),
		}
	case *types.Pointer:
		elem := analyzeType(v.Elem())
		return TypeDetail{
			Kind:     TypeKindPointer,
			ElemType: &elem,
			TypeName: "*" + elem.TypeName,
		}
	case *types.Slice:
		elem := analyzeType(v.Elem())
		return TypeDetail{
			Kind:     TypeKindSlice,
			ElemType: &elem,
			TypeName: "[]" + elem.TypeName,
		}
	case *types.Map:
		key := analyzeType(v.Key())
		elem := analyzeType(v.Elem())
		return TypeDetail{
			Kind:     TypeKindMap,
			KeyType:  &key,
			ElemType: &elem,
			TypeName: "map[" + key.TypeName + "]" + elem.TypeName,
		}
	case *types.Interface:
		return TypeDetail{Kind: TypeKindInterface, TypeName: "interface"}
	case *types.Named:
		obj := v.Obj()
		pkgPath := ""
		typeName := obj.Name()
		if obj.Pkg() != nil {
			pkgPath = obj.Pkg().Path()
			typeName = obj.Pkg().Path() + "." + obj.Name()
		}

		switch under := v.Underlying().(type) {
		case *types.Struct:
			return TypeDetail{
				Kind:       TypeKindStruct,
				PkgPath:    pkgPath,
				StructName: obj.Name(),
				TypeName:   typeName,
			}
		case *types.Basic:
			return TypeDetail{
				Kind:      TypeKindBasic,
				PkgPath:   pkgPath,
				IsBasic:   true,
				BasicKind: under.Name(),
				TypeName:  typeName,
			}
		case *types.Pointer:
			elem := analyzeType(under.Elem())
			return TypeDetail{Kind: TypeKindPointer, ElemType: &elem, PkgPath: pkgPath, TypeName: typeName}
		case *types.Slice:
			elem := analyzeType(under.Elem())
			return TypeDetail{Kind: TypeKindSlice, ElemType: &elem, PkgPath: pkgPath, TypeName: typeName}
		case *types.Map:
			key := analyzeType(under.Key())
			elem := analyzeType(under.Elem())
			return TypeDetail{Kind: TypeKindMap, KeyType: &key, ElemType: &elem, PkgPath: pkgPath, TypeName: typeName}
		case *types.Interface:
			return TypeDetail{Kind: TypeKindInterface, PkgPath: pkgPath, TypeName: typeName}
		default:
			return TypeDetail{Kind: TypeKindOther, PkgPath: pkgPath, TypeName: typeName}
		}
	default:
		return TypeDetail{Kind: TypeKindOther, TypeName: strings.TrimSpace(types.TypeString(t, nil))}
	}
}
