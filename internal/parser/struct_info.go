package parser

import "go/types"

// StructInfo holds flattened field information for one struct.
type StructInfo struct {
	Name    string
	PkgPath string
	PkgName string
	Fields  []FieldInfo
}

// FieldInfo stores one member of a property table.
type FieldInfo struct {
	Name string
	// Index is the reflect index path from the parsed struct.
	Index      []int
	AccessPath string
	TypeStr    string
	TypeInfo   TypeDetail
	Type       types.Type
	Tag        string
	IsExported bool
	EmbedFrom  string

	// Getter and Setter name the Get<Name>/Set<Name> methods whose
	// signatures match the field type.
	Getter string
	Setter string

	// Accessible reports that AccessPath can be written in the parsed
	// package. Nameable reports the same of TypeStr.
	Accessible bool
	Nameable   bool
	// Imports lists the packages TypeStr refers to.
	Imports []string
}

// TypeDetail keeps simplified type metadata for resolution.
type TypeDetail struct {
	Kind       TypeKind
	PkgPath    string
	ElemType   *TypeDetail
	KeyType    *TypeDetail
	IsBasic    bool
	BasicKind  string
	StructName string
	TypeName   string
}

// TypeKind is coarse-grained type category.
type TypeKind int

const (
	TypeKindBasic TypeKind = iota
	TypeKindPointer
	TypeKindStruct
	TypeKindSlice
	TypeKindMap
	TypeKindInterface
	TypeKindOther
)
