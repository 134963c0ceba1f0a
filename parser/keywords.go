package parser

// keywords maps every accepted word, including all synonyms, onto its
// canonical token kind. Lookups happen on the lowercased lexeme. The map is
// built once and never mutated.
var keywords = map[string]TokenKind{
	// Commands
	"select": TokenKindSelect,
	"show":   TokenKindSelect,
	"list":   TokenKindSelect,
	"get":    TokenKindSelect,
	"find":   TokenKindFind,
	"count":  TokenKindCount,
	"sum":    TokenKindSum,
	"insert": TokenKindInsert,
	"update": TokenKindUpdate,
	"delete": TokenKindDelete,
	"remove": TokenKindDelete,

	// Clauses
	"from":   TokenKindFrom,
	"of":     TokenKindFrom,
	"where":  TokenKindWhere,
	"and":    TokenKindAnd,
	"or":     TokenKindOr,
	"order":  TokenKindOrder,
	"by":     TokenKindBy,
	"group":  TokenKindGroup,
	"into":   TokenKindInto,
	"set":    TokenKindSet,
	"values": TokenKindValues,

	// Modifiers
	"all":        TokenKindAll,
	"distinct":   TokenKindDistinct,
	"unique":     TokenKindDistinct,
	"asc":        TokenKindAsc,
	"ascending":  TokenKindAsc,
	"desc":       TokenKindDesc,
	"descending": TokenKindDesc,

	// Conditions
	"between":  TokenKindBetween,
	"in":       TokenKindIn,
	"like":     TokenKindLike,
	"contains": TokenKindContains,

	// Aggregates
	"how":   TokenKindHow,
	"many":  TokenKindMany,
	"total": TokenKindTotal,

	// Table operations
	"alter":   TokenKindAlter,
	"table":   TokenKindTable,
	"drop":    TokenKindDrop,
	"column":  TokenKindColumn,
	"columns": TokenKindColumn,
	"col":     TokenKindColumn,
}

type operatorPhrase struct {
	phrase string
	symbol string
}

// operatorPhrases replaces natural language comparisons with their symbol.
// The list is ordered longest phrase first, so that e.g. "greater than or
// equal to" is replaced before its prefix "greater than" gets a chance to
// corrupt the remaining " or equal to".
var operatorPhrases = []operatorPhrase{
	{"greater than or equal to", ">="},
	{"less than or equal to", "<="},
	{"different from", "!="},
	{"not equal to", "!="},
	{"greater than", ">"},
	{"is equal to", "="},
	{"not equal", "!="},
	{"more than", ">"},
	{"less than", "<"},
	{"equal to", "="},
	{"same as", "="},
	{"equals", "="},
	{"equal", "="},
}
