package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexInvalidToken       Code = 1001
	LexUnterminatedString Code = 1002

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnexpectedEOF     Code = 2002
	SynUnclosedParen     Code = 2003
	SynUnclosedBracket   Code = 2004
	SynUnclosedBrace     Code = 2005
	SynOddMap            Code = 2006
	SynBadInteger        Code = 2007
	SynBadDouble         Code = 2008
	SynBadUnicode        Code = 2009
	SynBindingNotSymbol  Code = 2010
	SynDefName           Code = 2011
	SynDefArity          Code = 2012
	SynMacroName         Code = 2013
	SynParamNotSymbol    Code = 2014
	SynParamOutsideSugar Code = 2015
	SynNestedSugar       Code = 2016
	SynBadParam          Code = 2017
	SynQuoteArity        Code = 2018
	SynIfArity           Code = 2019
	SynExpectBracket     Code = 2020
	SynLetArity          Code = 2021

	// Ввод/вывод
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Проект
	ProjManifest Code = 5001

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexInvalidToken:       "Invalid token",
	LexUnterminatedString: "Unterminated string literal",

	SynInfo:              "Syntax information",
	SynUnexpectedToken:   "Unexpected token",
	SynUnexpectedEOF:     "Unexpected end of input",
	SynUnclosedParen:     "Unclosed parenthesis",
	SynUnclosedBracket:   "Unclosed bracket",
	SynUnclosedBrace:     "Unclosed brace",
	SynOddMap:            "Map literal needs key-value pairs",
	SynBadInteger:        "Invalid integer literal",
	SynBadDouble:         "Invalid floating point literal",
	SynBadUnicode:        "Invalid unicode escape",
	SynBindingNotSymbol:  "Binding target must be a symbol",
	SynDefName:           "Definition name must be a symbol",
	SynDefArity:          "Definition takes a name and one expression",
	SynMacroName:         "Macro name must be a symbol",
	SynParamNotSymbol:    "Parameter must be a symbol",
	SynParamOutsideSugar: "Parameter placeholder outside #()",
	SynNestedSugar:       "Nested #() is not allowed",
	SynBadParam:          "Invalid parameter placeholder",
	SynQuoteArity:        "quote takes exactly one form",
	SynIfArity:           "if takes a condition and one or two branches",
	SynExpectBracket:     "Expected '['",
	SynLetArity:          "let binding has no value",

	IOLoadFileError: "I/O load file error",
	IOCacheError:    "Cache error",

	ProjManifest: "Invalid project manifest",

	ObsInfo:    "Observability information",
	ObsTimings: "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
