package parser

import (
	"fmt"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"nlsql/ast"
	"strconv"
	"strings"
)

// Parser consumes a token stream via recursive descent and produces one
// statement node. The first violation of the grammar aborts the parse, there
// is no recovery or resynchronization.
type Parser struct {
	tokens []*Token
	index  int
}

// ParseQueryString tokenizes and parses the given query text.
func ParseQueryString(queryString string) (ast.Node, error) {
	tokens := Tokenize(queryString)

	sigolo.Tracef("Found %d token", len(tokens))
	for _, t := range tokens {
		sigolo.Tracef("  kind=%s, pos=%d : %s", t.Kind, t.StartPosition, t.Lexeme)
	}

	return Parse(tokens)
}

// Parse turns the given tokens into a statement node. The token slice must
// end with an end-of-input token, as produced by Tokenize.
func Parse(tokens []*Token) (ast.Node, error) {
	if len(tokens) == 0 {
		return nil, errors.New("Cannot parse empty token stream")
	}

	parser := Parser{
		tokens: tokens,
		index:  0,
	}
	return parser.parse()
}

// currentToken returns the token at the current position. Past the end of
// the stream it keeps returning the terminal end-of-input token.
func (p *Parser) currentToken() *Token {
	if p.index >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.index]
}

func (p *Parser) moveToNextToken() *Token {
	p.index++
	sigolo.Debugb(1, "Moved to next token: %+v", p.currentToken())
	return p.currentToken()
}

// match returns true when the current token has any of the given kinds.
func (p *Parser) match(kinds ...TokenKind) bool {
	currentKind := p.currentToken().Kind
	for _, kind := range kinds {
		if currentKind == kind {
			return true
		}
	}
	return false
}

// expect consumes and returns the current token when it has the given kind
// and fails otherwise.
func (p *Parser) expect(kind TokenKind) (*Token, error) {
	token := p.currentToken()
	if token.Kind != kind {
		return nil, ParsingErrorExpectedTokenKind(token.StartPosition, token.Lexeme, token.Kind, kind)
	}
	p.moveToNextToken()
	return token, nil
}

// consumeIf consumes and returns the current token when it has the given
// kind and returns nil otherwise.
func (p *Parser) consumeIf(kind TokenKind) *Token {
	if !p.match(kind) {
		return nil
	}
	token := p.currentToken()
	p.moveToNextToken()
	return token
}

func (p *Parser) parse() (ast.Node, error) {
	token := p.currentToken()

	switch token.Kind {
	case TokenKindSelect:
		return p.parseSelect()
	case TokenKindCount, TokenKindHow:
		return p.parseCount()
	case TokenKindSum, TokenKindTotal:
		return p.parseSum()
	case TokenKindFind:
		return p.parseFind()
	case TokenKindInsert:
		return p.parseInsert()
	case TokenKindUpdate:
		return p.parseUpdate()
	case TokenKindDelete:
		return p.parseDelete()
	case TokenKindAlter:
		return p.parseAlter()
	}

	return nil, ParsingErrorExpectedButFound("statement keyword", token.StartPosition, token.Lexeme, token.Kind)
}

/*
parseSelect handles the various SELECT forms:

	"select all from users"
	"select * from users"
	"select name, age from users"
	"select users where ..."      (table as first identifier)

The last form needs one token of lookahead behind the first identifier: when
a clause keyword (or the end of the input) follows directly, the identifier
must have been the table name and the projection defaults to all columns.
*/
func (p *Parser) parseSelect() (ast.Node, error) {
	p.moveToNextToken()

	distinct := false
	var columns []string
	var table string
	var err error

	if p.consumeIf(TokenKindDistinct) != nil {
		distinct = true
	}

	if p.match(TokenKindAll, TokenKindStar) {
		p.moveToNextToken()
		columns = []string{"*"}
		table, err = p.parseFrom(false)
		if err != nil {
			return nil, err
		}
	} else {
		firstIdentifier := ""
		if identifierToken := p.consumeIf(TokenKindIdentifier); identifierToken != nil {
			firstIdentifier = identifierToken.Lexeme
		}

		if p.match(TokenKindComma) {
			// A column list: "select name, age from users"
			if firstIdentifier == "" {
				token := p.currentToken()
				return nil, ParsingErrorExpectedButFound("column name", token.StartPosition, token.Lexeme, token.Kind)
			}
			columns = []string{firstIdentifier}
			for p.consumeIf(TokenKindComma) != nil {
				if identifierToken := p.consumeIf(TokenKindIdentifier); identifierToken != nil {
					columns = append(columns, identifierToken.Lexeme)
				}
			}
			table, err = p.parseFrom(false)
			if err != nil {
				return nil, err
			}
		} else if p.match(TokenKindFrom) {
			// A single column: "select name from users"
			if firstIdentifier == "" {
				token := p.currentToken()
				return nil, ParsingErrorExpectedButFound("column name", token.StartPosition, token.Lexeme, token.Kind)
			}
			columns = []string{firstIdentifier}
			table, err = p.parseFrom(false)
			if err != nil {
				return nil, err
			}
		} else if p.match(TokenKindWhere, TokenKindOrder, TokenKindGroup, TokenKindEndOfInput) {
			// The identifier was the table: "select users where ..." is
			// shorthand for "select * from users where ...".
			columns = []string{"*"}
			table = firstIdentifier
		} else {
			// Default: treat the identifier as column and look for a FROM
			// clause. Without one the identifier must have been the table.
			columns = []string{"*"}
			if firstIdentifier != "" {
				columns = []string{firstIdentifier}
			}
			table, err = p.parseFrom(true)
			if err != nil {
				return nil, err
			}
			if table == "" {
				table = firstIdentifier
				columns = []string{"*"}
			}
		}
	}

	if table == "" {
		token := p.currentToken()
		return nil, ParsingErrorExpectedButFound("table name", token.StartPosition, token.Lexeme, token.Kind)
	}

	selectNode := &ast.Select{
		Columns:  columns,
		Table:    table,
		Distinct: distinct,
	}

	return p.parseOptionalSelectClauses(selectNode)
}

// parseOptionalSelectClauses parses the optional WHERE, ORDER BY and GROUP
// BY clauses onto the given node.
func (p *Parser) parseOptionalSelectClauses(selectNode *ast.Select) (ast.Node, error) {
	var err error

	if p.match(TokenKindWhere) {
		selectNode.Where, err = p.parseWhere()
		if err != nil {
			return nil, err
		}
	}

	if p.match(TokenKindOrder) {
		selectNode.OrderBy, err = p.parseOrderBy()
		if err != nil {
			return nil, err
		}
	}

	if p.match(TokenKindGroup) {
		selectNode.GroupBy, err = p.parseGroupBy()
		if err != nil {
			return nil, err
		}
	}

	return selectNode, nil
}

// parseFrom parses a FROM clause and returns the table name. With
// allowMissing set, a missing clause returns an empty table name instead of
// an error. This handles forms like "select users where ...".
func (p *Parser) parseFrom(allowMissing bool) (string, error) {
	if p.match(TokenKindFrom) {
		p.moveToNextToken()
	} else if !allowMissing && !p.match(TokenKindIdentifier) {
		token := p.currentToken()
		return "", ParsingErrorExpectedButFound("table name after FROM", token.StartPosition, token.Lexeme, token.Kind)
	}

	if identifierToken := p.consumeIf(TokenKindIdentifier); identifierToken != nil {
		return identifierToken.Lexeme, nil
	}

	if !allowMissing {
		token := p.currentToken()
		return "", ParsingErrorExpectedButFound("table name after FROM", token.StartPosition, token.Lexeme, token.Kind)
	}

	return "", nil
}

func (p *Parser) parseWhere() (*ast.Where, error) {
	p.moveToNextToken()

	condition, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	return &ast.Where{Condition: condition}, nil
}

// parseCondition parses a chain of simple conditions joined by AND/OR. The
// chain folds left-to-right, there is no precedence between the two
// operators: "a=1 AND b=2 OR c=3" becomes ((a=1 AND b=2) OR c=3).
func (p *Parser) parseCondition() (ast.Condition, error) {
	left, err := p.parseSimpleCondition()
	if err != nil {
		return nil, err
	}

	for p.match(TokenKindAnd, TokenKindOr) {
		operatorToken := p.currentToken()
		p.moveToNextToken()

		right, err := p.parseSimpleCondition()
		if err != nil {
			return nil, err
		}

		if operatorToken.Kind == TokenKindAnd {
			left = &ast.AndCondition{Left: left, Right: right}
		} else {
			left = &ast.OrCondition{Left: left, Right: right}
		}
	}

	return left, nil
}

func (p *Parser) parseSimpleCondition() (ast.Condition, error) {
	columnToken := p.currentToken()
	if columnToken.Kind != TokenKindIdentifier {
		return nil, ParsingErrorExpectedButFound("column name in condition", columnToken.StartPosition, columnToken.Lexeme, columnToken.Kind)
	}
	p.moveToNextToken()
	column := columnToken.Lexeme

	if p.consumeIf(TokenKindBetween) != nil {
		low, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(TokenKindAnd); err != nil {
			return nil, err
		}
		high, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return &ast.BetweenCondition{Column: column, Low: low, High: high}, nil
	}

	if p.consumeIf(TokenKindIn) != nil {
		values, err := p.parseValueList()
		if err != nil {
			return nil, err
		}
		return &ast.InCondition{Column: column, Values: values}, nil
	}

	if p.match(TokenKindLike, TokenKindContains) {
		p.moveToNextToken()
		pattern, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return &ast.LikeCondition{Column: column, Pattern: fmt.Sprintf("%v", pattern)}, nil
	}

	operator, err := p.parseOperator()
	if err != nil {
		return nil, err
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &ast.SimpleCondition{Column: column, Operator: operator, Value: value}, nil
}

func (p *Parser) parseOperator() (string, error) {
	token := p.currentToken()

	switch token.Kind {
	case TokenKindEquals, TokenKindNotEquals, TokenKindGreater, TokenKindLess, TokenKindGreaterEqual, TokenKindLessEqual:
		p.moveToNextToken()
		return token.Lexeme, nil
	}

	return "", ParsingErrorExpectedButFound("comparison operator", token.StartPosition, token.Lexeme, token.Kind)
}

// parseValue parses a literal. A number without decimal point becomes an
// int, one with a decimal point a float64. String and identifier tokens both
// become their text, which deliberately allows comparing a column against an
// unquoted word.
func (p *Parser) parseValue() (any, error) {
	token := p.currentToken()

	switch token.Kind {
	case TokenKindNumber:
		p.moveToNextToken()
		if strings.Contains(token.Lexeme, ".") {
			floatValue, err := strconv.ParseFloat(token.Lexeme, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "Cannot parse number literal '%s' at position %d", token.Lexeme, token.StartPosition)
			}
			return floatValue, nil
		}
		intValue, err := strconv.Atoi(token.Lexeme)
		if err != nil {
			return nil, errors.Wrapf(err, "Cannot parse number literal '%s' at position %d", token.Lexeme, token.StartPosition)
		}
		return intValue, nil
	case TokenKindString, TokenKindIdentifier:
		p.moveToNextToken()
		return token.Lexeme, nil
	}

	return nil, ParsingErrorExpectedButFound("value", token.StartPosition, token.Lexeme, token.Kind)
}

// parseValueList parses a comma separated list of values with optional
// surrounding parentheses.
func (p *Parser) parseValueList() ([]any, error) {
	hasParenthesis := p.consumeIf(TokenKindOpeningParenthesis) != nil

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	values := []any{value}

	for p.consumeIf(TokenKindComma) != nil {
		value, err = p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	if hasParenthesis {
		p.consumeIf(TokenKindClosingParenthesis)
	}

	return values, nil
}

// parseOrderBy parses an ORDER BY clause. The column defaults to "id" and
// the direction to ASC when omitted.
func (p *Parser) parseOrderBy() (*ast.OrderBy, error) {
	p.moveToNextToken()
	if _, err := p.expect(TokenKindBy); err != nil {
		return nil, err
	}

	column := "id"
	if identifierToken := p.consumeIf(TokenKindIdentifier); identifierToken != nil {
		column = identifierToken.Lexeme
	}

	direction := "ASC"
	if p.consumeIf(TokenKindAsc) != nil {
		direction = "ASC"
	} else if p.consumeIf(TokenKindDesc) != nil {
		direction = "DESC"
	}

	return &ast.OrderBy{Column: column, Direction: direction}, nil
}

func (p *Parser) parseGroupBy() (*ast.GroupBy, error) {
	p.moveToNextToken()
	if _, err := p.expect(TokenKindBy); err != nil {
		return nil, err
	}

	token := p.currentToken()
	if token.Kind != TokenKindIdentifier {
		return nil, ParsingErrorExpectedButFound("column name after GROUP BY", token.StartPosition, token.Lexeme, token.Kind)
	}
	p.moveToNextToken()

	return &ast.GroupBy{Column: token.Lexeme}, nil
}

// parseCount parses "count <table>" and "how many <table>" queries,
// including optional FROM and WHERE clauses.
func (p *Parser) parseCount() (ast.Node, error) {
	p.moveToNextToken()

	// "how many users" has the filler word MANY after HOW
	p.consumeIf(TokenKindMany)

	// The target is the table unless an explicit FROM clause follows.
	table := ""
	if identifierToken := p.consumeIf(TokenKindIdentifier); identifierToken != nil {
		table = identifierToken.Lexeme
	}

	if p.consumeIf(TokenKindFrom) != nil {
		if identifierToken := p.consumeIf(TokenKindIdentifier); identifierToken != nil {
			table = identifierToken.Lexeme
		}
	}

	if table == "" {
		token := p.currentToken()
		return nil, ParsingErrorExpectedButFound("table name", token.StartPosition, token.Lexeme, token.Kind)
	}

	selectNode := &ast.Select{
		Columns:   []string{"COUNT(*)"},
		Table:     table,
		Aggregate: &ast.Aggregate{Function: "COUNT"},
	}

	var err error
	if p.match(TokenKindWhere) {
		selectNode.Where, err = p.parseWhere()
		if err != nil {
			return nil, err
		}
	}

	return selectNode, nil
}

// parseSum parses "sum <column> from <table>" and "total <column> ..."
// queries. Without a FROM clause the column doubles as the table name.
func (p *Parser) parseSum() (ast.Node, error) {
	p.moveToNextToken()

	column := ""
	if identifierToken := p.consumeIf(TokenKindIdentifier); identifierToken != nil {
		column = identifierToken.Lexeme
	}

	table := column
	if p.consumeIf(TokenKindFrom) != nil {
		if identifierToken := p.consumeIf(TokenKindIdentifier); identifierToken != nil {
			table = identifierToken.Lexeme
		}
	}

	if table == "" {
		token := p.currentToken()
		return nil, ParsingErrorExpectedButFound("table name", token.StartPosition, token.Lexeme, token.Kind)
	}

	sumColumns := "SUM(*)"
	if column != "" {
		sumColumns = "SUM(" + column + ")"
	}

	selectNode := &ast.Select{
		Columns:   []string{sumColumns},
		Table:     table,
		Aggregate: &ast.Aggregate{Function: "SUM", Column: column},
	}

	var err error
	if p.match(TokenKindWhere) {
		selectNode.Where, err = p.parseWhere()
		if err != nil {
			return nil, err
		}
	}

	return selectNode, nil
}

// parseFind parses "find <table> [where ...]", sugar for "SELECT * FROM
// <table>" that usually carries a LIKE/CONTAINS condition.
func (p *Parser) parseFind() (ast.Node, error) {
	p.moveToNextToken()

	table := ""
	if identifierToken := p.consumeIf(TokenKindIdentifier); identifierToken != nil {
		table = identifierToken.Lexeme
	}

	if table == "" {
		token := p.currentToken()
		return nil, ParsingErrorExpectedButFound("table name", token.StartPosition, token.Lexeme, token.Kind)
	}

	selectNode := &ast.Select{
		Columns: []string{"*"},
		Table:   table,
	}

	var err error
	if p.match(TokenKindWhere) {
		selectNode.Where, err = p.parseWhere()
		if err != nil {
			return nil, err
		}
	}

	return selectNode, nil
}

func (p *Parser) parseInsert() (ast.Node, error) {
	p.moveToNextToken()
	if _, err := p.expect(TokenKindInto); err != nil {
		return nil, err
	}

	tableToken := p.currentToken()
	if tableToken.Kind != TokenKindIdentifier {
		return nil, ParsingErrorExpectedButFound("table name after INSERT INTO", tableToken.StartPosition, tableToken.Lexeme, tableToken.Kind)
	}
	p.moveToNextToken()

	if _, err := p.expect(TokenKindValues); err != nil {
		return nil, err
	}

	values, err := p.parseValueList()
	if err != nil {
		return nil, err
	}

	return &ast.Insert{Table: tableToken.Lexeme, Values: values}, nil
}

func (p *Parser) parseUpdate() (ast.Node, error) {
	p.moveToNextToken()

	tableToken := p.currentToken()
	if tableToken.Kind != TokenKindIdentifier {
		return nil, ParsingErrorExpectedButFound("table name after UPDATE", tableToken.StartPosition, tableToken.Lexeme, tableToken.Kind)
	}
	p.moveToNextToken()

	if _, err := p.expect(TokenKindSet); err != nil {
		return nil, err
	}

	columnToken := p.currentToken()
	if columnToken.Kind != TokenKindIdentifier {
		return nil, ParsingErrorExpectedButFound("column name after SET", columnToken.StartPosition, columnToken.Lexeme, columnToken.Kind)
	}
	p.moveToNextToken()

	if _, err := p.expect(TokenKindEquals); err != nil {
		return nil, err
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	updateNode := &ast.Update{
		Table:     tableToken.Lexeme,
		SetColumn: columnToken.Lexeme,
		SetValue:  value,
	}

	if p.match(TokenKindWhere) {
		updateNode.Where, err = p.parseWhere()
		if err != nil {
			return nil, err
		}
	}

	return updateNode, nil
}

func (p *Parser) parseDelete() (ast.Node, error) {
	p.moveToNextToken()

	// "delete column age from users" drops a column instead of rows
	if p.match(TokenKindColumn) {
		return p.parseDropColumn()
	}

	p.consumeIf(TokenKindFrom)

	tableToken := p.currentToken()
	if tableToken.Kind != TokenKindIdentifier {
		return nil, ParsingErrorExpectedButFound("table name after DELETE FROM", tableToken.StartPosition, tableToken.Lexeme, tableToken.Kind)
	}
	p.moveToNextToken()

	deleteNode := &ast.Delete{Table: tableToken.Lexeme}

	var err error
	if p.match(TokenKindWhere) {
		deleteNode.Where, err = p.parseWhere()
		if err != nil {
			return nil, err
		}
	}

	return deleteNode, nil
}

// parseDropColumn parses the "delete column c1, c2 from table" shorthand
// into an ALTER TABLE statement.
func (p *Parser) parseDropColumn() (ast.Node, error) {
	p.moveToNextToken()

	var columns []string
	if identifierToken := p.consumeIf(TokenKindIdentifier); identifierToken != nil {
		columns = append(columns, identifierToken.Lexeme)
		for p.consumeIf(TokenKindComma) != nil {
			if identifierToken = p.consumeIf(TokenKindIdentifier); identifierToken != nil {
				columns = append(columns, identifierToken.Lexeme)
			}
		}
	}

	if _, err := p.expect(TokenKindFrom); err != nil {
		return nil, err
	}

	tableToken := p.currentToken()
	if tableToken.Kind != TokenKindIdentifier {
		return nil, ParsingErrorExpectedButFound("table name after FROM", tableToken.StartPosition, tableToken.Lexeme, tableToken.Kind)
	}
	p.moveToNextToken()

	return &ast.AlterTable{Table: tableToken.Lexeme, Action: "DROP COLUMN", Columns: columns}, nil
}

func (p *Parser) parseAlter() (ast.Node, error) {
	p.moveToNextToken()
	if _, err := p.expect(TokenKindTable); err != nil {
		return nil, err
	}

	tableToken := p.currentToken()
	if tableToken.Kind != TokenKindIdentifier {
		return nil, ParsingErrorExpectedButFound("table name after ALTER TABLE", tableToken.StartPosition, tableToken.Lexeme, tableToken.Kind)
	}
	p.moveToNextToken()

	if _, err := p.expect(TokenKindDrop); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenKindColumn); err != nil {
		return nil, err
	}

	var columns []string
	if identifierToken := p.consumeIf(TokenKindIdentifier); identifierToken != nil {
		columns = append(columns, identifierToken.Lexeme)
	}

	return &ast.AlterTable{Table: tableToken.Lexeme, Action: "DROP COLUMN", Columns: columns}, nil
}
