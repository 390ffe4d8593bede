package ast

// Kind classifies a node. Every concrete node type reports exactly one Kind.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindProgram
	KindBlock
	KindExprStmt
	KindVarDecl
	KindBinding
	KindFunc
	KindArrow
	KindCall
	KindMember
	KindIndex
	KindAssign
	KindObject
	KindProperty
	KindSpread
	KindArray
	KindString
	KindTemplate
	KindNumber
	KindBool
	KindNull
	KindIdent
	KindOther
	KindBad
)

var kindNames = [...]string{
	KindInvalid:  "Invalid",
	KindProgram:  "Program",
	KindBlock:    "Block",
	KindExprStmt: "ExprStmt",
	KindVarDecl:  "VarDecl",
	KindBinding:  "Binding",
	KindFunc:     "Func",
	KindArrow:    "Arrow",
	KindCall:     "Call",
	KindMember:   "Member",
	KindIndex:    "Index",
	KindAssign:   "Assign",
	KindObject:   "Object",
	KindProperty: "Property",
	KindSpread:   "Spread",
	KindArray:    "Array",
	KindString:   "String",
	KindTemplate: "Template",
	KindNumber:   "Number",
	KindBool:     "Bool",
	KindNull:     "Null",
	KindIdent:    "Ident",
	KindOther:    "Other",
	KindBad:      "Bad",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// PropKind distinguishes the syntactic forms of an object member.
type PropKind uint8

const (
	PropValue  PropKind = iota // key: value
	PropMethod                 // key() {}
	PropGet                    // get key() {}
	PropSet                    // set key(v) {}
	PropShort                  // { key }
)

func (k PropKind) String() string {
	switch k {
	case PropValue:
		return "value"
	case PropMethod:
		return "method"
	case PropGet:
		return "get"
	case PropSet:
		return "set"
	case PropShort:
		return "short"
	}
	return "unknown"
}
