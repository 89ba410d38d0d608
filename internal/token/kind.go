package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Root is the kind of the synthetic token attached to a Module node.
	Root Kind = iota
	// Invalid is input no rule matched.
	Invalid
	// Ignore covers whitespace, commas and line feeds; never emitted.
	Ignore
	Symbol
	Lambda
	// ShortLambdaBegin is `#(`.
	ShortLambdaBegin
	Let
	If
	Def
	DefMacro
	// Keyword is `:name`.
	Keyword
	// MacroKeyword is `::name`.
	MacroKeyword
	Float
	Int
	// Long is an integer with an `L` suffix.
	Long
	Hex
	Binary
	// BigNumber is an integer with an `N` suffix.
	BigNumber
	// UnicodeChar is `\uXXXX`.
	UnicodeChar
	String
	// Regexp is `#"..."`.
	Regexp
	Nil
	Boolean
	// ParamName is `%`, `%N` or `%&` inside `#(...)`.
	ParamName
	LeftParen
	// Comment runs from `;` to the end of the line; never emitted.
	Comment
	// UnquoteSplicing is `~@`.
	UnquoteSplicing
	// Deref is `@`.
	Deref
	Ref
	Backtick
	// Unquote is `~`.
	Unquote
	// Tag is `^`.
	Tag
	// Dispatch is `#name`, a tagged literal prefix.
	Dispatch
	// SetBegin is `#{`.
	SetBegin
	RightParen
	LeftBracket
	RightBracket
	LeftBrace
	RightBrace
	// Quote is `'`.
	Quote
	QuoteRm
	KQuote
	Colon
	Eof
)

var kindNames = [...]string{
	Root:             "Root",
	Invalid:          "Invalid",
	Ignore:           "Ignore",
	Symbol:           "Symbol",
	Lambda:           "Lambda",
	ShortLambdaBegin: "ShortLambdaBegin",
	Let:              "Let",
	If:               "If",
	Def:              "Def",
	DefMacro:         "DefMacro",
	Keyword:          "Keyword",
	MacroKeyword:     "MacroKeyword",
	Float:            "Float",
	Int:              "Int",
	Long:             "Long",
	Hex:              "Hex",
	Binary:           "Binary",
	BigNumber:        "BigNumber",
	UnicodeChar:      "UnicodeChar",
	String:           "String",
	Regexp:           "Regexp",
	Nil:              "Nil",
	Boolean:          "Boolean",
	ParamName:        "ParamName",
	LeftParen:        "LeftParen",
	Comment:          "Comment",
	UnquoteSplicing:  "UnquoteSplicing",
	Deref:            "Deref",
	Ref:              "Ref",
	Backtick:         "Backtick",
	Unquote:          "Unquote",
	Tag:              "Tag",
	Dispatch:         "Dispatch",
	SetBegin:         "SetBegin",
	RightParen:       "RightParen",
	LeftBracket:      "LeftBracket",
	RightBracket:     "RightBracket",
	LeftBrace:        "LeftBrace",
	RightBrace:       "RightBrace",
	Quote:            "Quote",
	QuoteRm:          "QuoteRm",
	KQuote:           "KQuote",
	Colon:            "Colon",
	Eof:              "Eof",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsNumber reports whether k is one of the numeric literal kinds.
func (k Kind) IsNumber() bool {
	switch k {
	case Int, Long, Hex, Binary, BigNumber, Float:
		return true
	default:
		return false
	}
}

// IsReaderMacro reports whether k is a prefix that wraps the following form.
func (k Kind) IsReaderMacro() bool {
	switch k {
	case Quote, Backtick, Unquote, UnquoteSplicing, Deref, Tag, Dispatch:
		return true
	default:
		return false
	}
}

// IsCloser reports whether k terminates a collection.
func (k Kind) IsCloser() bool {
	return k == RightParen || k == RightBracket || k == RightBrace
}
