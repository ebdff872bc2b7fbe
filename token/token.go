package token

import (
	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/internal/grapheme"
)

// Kind tags one rendered token. Every visible character on screen belongs
// to exactly one token, and every token names the node that owns it.
type Kind uint8

const (
	KindNone Kind = iota

	// Literal fragments.
	KindInteger
	KindFloatWhole
	KindFloatPoint
	KindFloatFraction
	KindString
	KindStringMLStart
	KindStringMLMiddle
	KindStringMLEnd
	KindTrue
	KindFalse
	KindNull

	// Placeholders and in-progress edits.
	KindBlank
	KindPlaceholder
	KindPartial
	KindRightPartial

	// Let.
	KindLetKeyword
	KindLetVarName
	KindLetAssignment

	// If.
	KindIfKeyword
	KindIfThenKeyword
	KindIfElseKeyword

	// Operators and calls.
	KindBinOp
	KindFieldOp
	KindFieldName
	KindVariable
	KindFnName

	// Lambda.
	KindLambdaSymbol
	KindLambdaVar
	KindLambdaComma
	KindLambdaArrow

	// List.
	KindListOpen
	KindListClose
	KindListComma

	// Record.
	KindRecordOpen
	KindRecordClose
	KindRecordFieldname
	KindRecordSep

	// Pipeline.
	KindPipe

	// Constructor.
	KindConstructorName

	// Match.
	KindMatchKeyword
	KindMatchArrow

	// Patterns.
	KindPatternVariable
	KindPatternConstructorName
	KindPatternInteger
	KindPatternString
	KindPatternTrue
	KindPatternFalse
	KindPatternNull
	KindPatternFloatWhole
	KindPatternFloatPoint
	KindPatternFloatFraction
	KindPatternBlank

	// Feature flags.
	KindFlagWhenKeyword
	KindFlagEnabledKeyword

	// Layout.
	KindSep
	KindNewline
	KindIndent
)

// BlankText is the rendering of an empty slot.
const BlankText = "___"

// Token is one leaf rendering unit.
type Token struct {
	ID   expr.ID
	Kind Kind
	Text string

	// Offset is the grapheme offset of a multiline string fragment within
	// its logical string value. Zero for everything else.
	Offset int

	// Indent is the target indent of the following line; meaningful on
	// KindNewline only.
	Indent int
}

// Info is a Token plus positions computed by Layout. StartPos/EndPos are
// half-open grapheme offsets into the flattened text; StartRow/StartCol
// locate the first grapheme on the grid.
type Info struct {
	Token
	StartPos int
	EndPos   int
	StartRow int
	StartCol int
}

// Width returns the token's text length in grapheme clusters.
func (t Token) Width() int {
	if t.Kind == KindNewline {
		return 1
	}
	return grapheme.Count(t.Text)
}

// IsWhitespace reports layout-only tokens, skipped by neighbor lookups.
func (k Kind) IsWhitespace() bool {
	switch k {
	case KindSep, KindNewline, KindIndent:
		return true
	}
	return false
}

// IsAtomic reports tokens the caret steps over in one move rather than
// grapheme by grapheme.
func (k Kind) IsAtomic() bool {
	switch k {
	case KindLetKeyword, KindLetAssignment,
		KindIfKeyword, KindIfThenKeyword, KindIfElseKeyword,
		KindMatchKeyword, KindMatchArrow,
		KindFlagWhenKeyword, KindFlagEnabledKeyword,
		KindLambdaSymbol, KindLambdaArrow, KindLambdaComma,
		KindTrue, KindFalse, KindNull,
		KindPatternTrue, KindPatternFalse, KindPatternNull, KindPatternBlank,
		KindBlank, KindPlaceholder,
		KindListOpen, KindListClose, KindListComma,
		KindRecordOpen, KindRecordClose, KindRecordSep,
		KindPipe, KindFieldOp:
		return true
	}
	return false
}

// IsTextual reports tokens whose text the caret edits in place.
func (k Kind) IsTextual() bool {
	switch k {
	case KindInteger, KindFloatWhole, KindFloatFraction,
		KindString, KindStringMLStart, KindStringMLMiddle, KindStringMLEnd,
		KindVariable, KindFnName, KindBinOp,
		KindLetVarName, KindLambdaVar, KindFieldName, KindRecordFieldname,
		KindConstructorName,
		KindPartial, KindRightPartial,
		KindPatternVariable, KindPatternInteger, KindPatternString,
		KindPatternConstructorName,
		KindPatternFloatWhole, KindPatternFloatFraction:
		return true
	}
	return false
}

// IsBlank reports tokens a blank-navigation jump should land on: true
// blanks, typed placeholders, and nameable slots that are still empty.
func (t Token) IsBlank() bool {
	switch t.Kind {
	case KindBlank, KindPlaceholder, KindPatternBlank:
		return true
	case KindLetVarName, KindLambdaVar, KindFieldName, KindRecordFieldname:
		return t.Text == BlankText
	}
	return false
}

// IsStringFragment reports tokens holding a slice of a string literal.
func (k Kind) IsStringFragment() bool {
	switch k {
	case KindString, KindStringMLStart, KindStringMLMiddle, KindStringMLEnd:
		return true
	}
	return false
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

var kindNames = [...]string{
	KindNone:                   "none",
	KindInteger:                "integer",
	KindFloatWhole:             "float-whole",
	KindFloatPoint:             "float-point",
	KindFloatFraction:          "float-fraction",
	KindString:                 "string",
	KindStringMLStart:          "string-ml-start",
	KindStringMLMiddle:         "string-ml-middle",
	KindStringMLEnd:            "string-ml-end",
	KindTrue:                   "true",
	KindFalse:                  "false",
	KindNull:                   "null",
	KindBlank:                  "blank",
	KindPlaceholder:            "placeholder",
	KindPartial:                "partial",
	KindRightPartial:           "right-partial",
	KindLetKeyword:             "let-keyword",
	KindLetVarName:             "let-var-name",
	KindLetAssignment:          "let-assignment",
	KindIfKeyword:              "if-keyword",
	KindIfThenKeyword:          "if-then-keyword",
	KindIfElseKeyword:          "if-else-keyword",
	KindBinOp:                  "binop",
	KindFieldOp:                "field-op",
	KindFieldName:              "field-name",
	KindVariable:               "variable",
	KindFnName:                 "fn-name",
	KindLambdaSymbol:           "lambda-symbol",
	KindLambdaVar:              "lambda-var",
	KindLambdaComma:            "lambda-comma",
	KindLambdaArrow:            "lambda-arrow",
	KindListOpen:               "list-open",
	KindListClose:              "list-close",
	KindListComma:              "list-comma",
	KindRecordOpen:             "record-open",
	KindRecordClose:            "record-close",
	KindRecordFieldname:        "record-fieldname",
	KindRecordSep:              "record-sep",
	KindPipe:                   "pipe",
	KindConstructorName:        "constructor-name",
	KindMatchKeyword:           "match-keyword",
	KindMatchArrow:             "match-arrow",
	KindPatternVariable:        "pattern-variable",
	KindPatternConstructorName: "pattern-constructor-name",
	KindPatternInteger:         "pattern-integer",
	KindPatternString:          "pattern-string",
	KindPatternTrue:            "pattern-true",
	KindPatternFalse:           "pattern-false",
	KindPatternNull:            "pattern-null",
	KindPatternFloatWhole:      "pattern-float-whole",
	KindPatternFloatPoint:      "pattern-float-point",
	KindPatternFloatFraction:   "pattern-float-fraction",
	KindPatternBlank:           "pattern-blank",
	KindFlagWhenKeyword:        "flag-when-keyword",
	KindFlagEnabledKeyword:     "flag-enabled-keyword",
	KindSep:                    "sep",
	KindNewline:                "newline",
	KindIndent:                 "indent",
}
