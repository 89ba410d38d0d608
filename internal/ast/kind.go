package ast

// Kind is the closed set of node kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindModule
	KindList
	KindVector
	KindMap
	KindSet
	KindTag
	KindModuleReference
	KindIf
	KindQuote
	KindDef
	KindLet
	KindLambda
	KindDefMacro
	KindLambdaSugar
	KindInteger
	KindDouble
	KindString
	KindUChar
	KindSymbol
	KindKeyword
	KindBoolean
	KindRegExp
	KindLambdaParam
	KindNil
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindModule:          "Module",
	KindList:            "List",
	KindVector:          "Vector",
	KindMap:             "Map",
	KindSet:             "Set",
	KindTag:             "Tag",
	KindModuleReference: "ModuleReference",
	KindIf:              "If",
	KindQuote:           "Quote",
	KindDef:             "Def",
	KindLet:             "Let",
	KindLambda:          "Lambda",
	KindDefMacro:        "DefMacro",
	KindLambdaSugar:     "LambdaSugar",
	KindInteger:         "Integer",
	KindDouble:          "Double",
	KindString:          "String",
	KindUChar:           "UChar",
	KindSymbol:          "Symbol",
	KindKeyword:         "Keyword",
	KindBoolean:         "Boolean",
	KindRegExp:          "RegExp",
	KindLambdaParam:     "LambdaParam",
	KindNil:             "Nil",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsStructural reports whether nodes of kind k hold a plain ordered child list.
func (k Kind) IsStructural() bool {
	switch k {
	case KindModule, KindList, KindVector, KindMap, KindSet, KindTag,
		KindModuleReference, KindLambdaSugar:
		return true
	default:
		return false
	}
}

// IsBinder reports whether nodes of kind k own a scope.
func (k Kind) IsBinder() bool {
	return k == KindModule || k == KindLet || k == KindLambda || k == KindDefMacro
}

// IsLeaf reports whether k is a literal kind.
func (k Kind) IsLeaf() bool {
	return k >= KindInteger
}
