package parser

import (
	"fmt"
)

type TokenKind int

const (
	TokenKindUnknown TokenKind = iota

	// Command keywords
	TokenKindSelect
	TokenKindFind
	TokenKindCount
	TokenKindSum
	TokenKindInsert
	TokenKindUpdate
	TokenKindDelete

	// Clause keywords
	TokenKindFrom
	TokenKindWhere
	TokenKindAnd
	TokenKindOr
	TokenKindOrder
	TokenKindBy
	TokenKindGroup
	TokenKindInto
	TokenKindSet
	TokenKindValues

	// Modifier keywords
	TokenKindAll
	TokenKindDistinct
	TokenKindAsc
	TokenKindDesc

	// Condition keywords
	TokenKindBetween
	TokenKindIn
	TokenKindLike
	TokenKindContains

	// Aggregate keywords
	TokenKindHow
	TokenKindMany
	TokenKindTotal

	// Table operation keywords
	TokenKindAlter
	TokenKindTable
	TokenKindDrop
	TokenKindColumn

	// Comparison operators
	TokenKindEquals
	TokenKindNotEquals
	TokenKindGreater
	TokenKindLess
	TokenKindGreaterEqual
	TokenKindLessEqual

	// Literals
	TokenKindNumber
	TokenKindString
	TokenKindIdentifier

	// Punctuation
	TokenKindComma
	TokenKindOpeningParenthesis
	TokenKindClosingParenthesis
	TokenKindStar

	TokenKindEndOfInput
)

func (k TokenKind) String() string {
	switch k {
	case TokenKindUnknown:
		return "UNKNOWN"
	case TokenKindSelect:
		return "SELECT"
	case TokenKindFind:
		return "FIND"
	case TokenKindCount:
		return "COUNT"
	case TokenKindSum:
		return "SUM"
	case TokenKindInsert:
		return "INSERT"
	case TokenKindUpdate:
		return "UPDATE"
	case TokenKindDelete:
		return "DELETE"
	case TokenKindFrom:
		return "FROM"
	case TokenKindWhere:
		return "WHERE"
	case TokenKindAnd:
		return "AND"
	case TokenKindOr:
		return "OR"
	case TokenKindOrder:
		return "ORDER"
	case TokenKindBy:
		return "BY"
	case TokenKindGroup:
		return "GROUP"
	case TokenKindInto:
		return "INTO"
	case TokenKindSet:
		return "SET"
	case TokenKindValues:
		return "VALUES"
	case TokenKindAll:
		return "ALL"
	case TokenKindDistinct:
		return "DISTINCT"
	case TokenKindAsc:
		return "ASC"
	case TokenKindDesc:
		return "DESC"
	case TokenKindBetween:
		return "BETWEEN"
	case TokenKindIn:
		return "IN"
	case TokenKindLike:
		return "LIKE"
	case TokenKindContains:
		return "CONTAINS"
	case TokenKindHow:
		return "HOW"
	case TokenKindMany:
		return "MANY"
	case TokenKindTotal:
		return "TOTAL"
	case TokenKindAlter:
		return "ALTER"
	case TokenKindTable:
		return "TABLE"
	case TokenKindDrop:
		return "DROP"
	case TokenKindColumn:
		return "COLUMN"
	case TokenKindEquals:
		return "EQUALS"
	case TokenKindNotEquals:
		return "NOT_EQUALS"
	case TokenKindGreater:
		return "GREATER"
	case TokenKindLess:
		return "LESS"
	case TokenKindGreaterEqual:
		return "GREATER_EQ"
	case TokenKindLessEqual:
		return "LESS_EQ"
	case TokenKindNumber:
		return "NUMBER"
	case TokenKindString:
		return "STRING"
	case TokenKindIdentifier:
		return "IDENTIFIER"
	case TokenKindComma:
		return "COMMA"
	case TokenKindOpeningParenthesis:
		return "LPAREN"
	case TokenKindClosingParenthesis:
		return "RPAREN"
	case TokenKindStar:
		return "STAR"
	case TokenKindEndOfInput:
		return "EOF"
	}
	return fmt.Sprintf("!! INVALID TOKEN KIND %d !!", k)
}

// Token is one classified lexical unit. The start position refers to an index
// in the normalized input text, not in the raw text the caller passed in.
type Token struct {
	Kind          TokenKind
	Lexeme        string
	StartPosition int
}
