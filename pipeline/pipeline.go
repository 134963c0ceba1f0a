// Package pipeline sequences the three translation stages (tokenize, parse,
// generate) for a single query. All stages are pure functions over their
// input, so concurrent calls are safe. When the pipeline fails the query is
// retried through the legacy fallback translator; callers always get a
// result, never an error.
package pipeline

import (
	"github.com/hauke96/sigolo/v2"
	"nlsql/ast"
	"nlsql/fallback"
	"nlsql/parser"
	"nlsql/sqlgen"
)

const (
	// MethodPipeline marks results produced by the tokenizer/parser pipeline.
	MethodPipeline = "Lexer → Parser → AST → SQL"
	// MethodFallback marks results produced by the legacy regex translator.
	MethodFallback = "English → DSL → AST → SQL (regex)"
)

// TokenInfo is the serializable view of one token.
type TokenInfo struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Result holds everything one translation produced. The AST field mirrors
// the statement tree with each node tagged by a "type" entry.
type Result struct {
	Input       string         `json:"input"`
	Method      string         `json:"method"`
	Tokens      []TokenInfo    `json:"tokens,omitempty"`
	AST         map[string]any `json:"ast"`
	SQL         string         `json:"sql"`
	DSL         string         `json:"dsl,omitempty"`
	Explanation string         `json:"explanation"`
}

// Tokenize runs the first stage on its own.
func Tokenize(text string) []*parser.Token {
	return parser.Tokenize(text)
}

// Parse runs the second stage on a token stream.
func Parse(tokens []*parser.Token) (ast.Node, error) {
	return parser.Parse(tokens)
}

// ParseText tokenizes and parses in one go.
func ParseText(text string) (ast.Node, error) {
	return parser.ParseQueryString(text)
}

// Generate runs the third stage on its own.
func Generate(node ast.Node) (string, error) {
	return sqlgen.Generate(node)
}

// Process translates the given query text. The tokenizer/parser pipeline is
// tried first; any error there sends the whole query through the legacy
// fallback translator instead.
func Process(text string) Result {
	tokens := parser.Tokenize(text)

	node, err := parser.Parse(tokens)
	if err == nil {
		var sql string
		sql, err = sqlgen.Generate(node)
		if err == nil {
			var astMap map[string]any
			astMap, err = ast.ToMap(node)
			if err == nil {
				return Result{
					Input:       text,
					Method:      MethodPipeline,
					Tokens:      tokenInfos(tokens),
					AST:         astMap,
					SQL:         sql,
					Explanation: "Successfully parsed using Lexer-Parser pipeline",
				}
			}
		}
	}

	sigolo.Debugf("Pipeline failed for query %q, trying fallback translator: %s", text, err.Error())
	return processFallback(text)
}

func processFallback(text string) Result {
	fallbackResult := fallback.Translate(text)

	result := Result{
		Input:       text,
		Method:      MethodFallback,
		DSL:         fallbackResult.DSL,
		SQL:         fallbackResult.SQL,
		Explanation: "Converted natural language to SQL (legacy regex method)",
	}

	if fallbackResult.Node == nil {
		// No node means no tree to serialize; the ast field still carries an
		// error-tagged object so API consumers always get one.
		result.AST = map[string]any{"error": "Could not parse DSL"}
		result.Explanation = "Could not parse: " + text
		return result
	}

	astMap, err := ast.ToMap(fallbackResult.Node)
	if err != nil {
		// The node set is closed, so this only happens when fallback and ast
		// run out of sync.
		sigolo.Errorf("Cannot serialize fallback AST: %+v", err)
		result.AST = map[string]any{"error": "Could not parse DSL"}
		result.SQL = fallback.DSLErrorComment
		result.Explanation = "Could not parse: " + text
		return result
	}

	result.AST = astMap
	return result
}

// ToSQL is the SQL-only shortcut around Process.
func ToSQL(text string) string {
	return Process(text).SQL
}

// tokenInfos converts tokens for serialization, dropping the terminal
// end-of-input token.
func tokenInfos(tokens []*parser.Token) []TokenInfo {
	infos := make([]TokenInfo, 0, len(tokens))
	for _, token := range tokens {
		if token.Kind == parser.TokenKindEndOfInput {
			continue
		}
		infos = append(infos, TokenInfo{Type: token.Kind.String(), Value: token.Lexeme})
	}
	return infos
}
