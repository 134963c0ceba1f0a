package fallback

import (
	"github.com/pkg/errors"
	"nlsql/ast"
	"nlsql/sqlgen"
	"regexp"
	"strings"
)

var (
	insertRegex   = regexp.MustCompile(`(?i)^INSERT INTO (\w+) VALUES \((.+)\)`)
	updateRegex   = regexp.MustCompile(`(?i)^UPDATE (\w+) SET (\w+)\s*=\s*(.+?) WHERE (\w+)\s*=\s*(.+)`)
	deleteRegex   = regexp.MustCompile(`(?i)^DELETE FROM (\w+) WHERE (\w+)\s*(=|>|<)\s*(.+)`)
	alterRegex    = regexp.MustCompile(`(?i)^ALTER TABLE (\w+) (DROP COLUMN .+)`)
	distinctRegex = regexp.MustCompile(`(?i)^SELECT DISTINCT (\w+) FROM (\w+)`)
	countRegex    = regexp.MustCompile(`^SELECT COUNT\((\w+|\*)\) FROM (\w+)`)
	sumRegex      = regexp.MustCompile(`^SELECT SUM\((\w+|\*)\) FROM (\w+)`)
	selectRegex   = regexp.MustCompile(`^SELECT (.+?) FROM (\w+)`)

	betweenRegex     = regexp.MustCompile(`WHERE (\w+) BETWEEN (\d+) AND (\d+)`)
	inRegex          = regexp.MustCompile(`WHERE (\w+) IN \((.+)\)`)
	likeRegex        = regexp.MustCompile(`WHERE (\w+) LIKE '(.+)'`)
	compoundRegex    = regexp.MustCompile(`WHERE (\w+) (>|<|=) (\w+) (AND|OR) (\w+) (>|<|=) (\w+)`)
	simpleWhereRegex = regexp.MustCompile(`WHERE (\w+)\s*(=|>|<)\s*(.+?)(?:\s+ORDER|\s+GROUP|$)`)
	orderByRegex     = regexp.MustCompile(`ORDER BY (\w+)(?: (ASC|DESC))?`)
	groupByRegex     = regexp.MustCompile(`GROUP BY (\w+)`)
)

// ParseDSL re-parses the intermediate DSL string into statement nodes so
// that the fallback path shares the sqlgen renderer with the main pipeline.
func ParseDSL(dsl string) (ast.Node, error) {
	t := strings.TrimSpace(dsl)

	if m := insertRegex.FindStringSubmatch(t); m != nil {
		return &ast.Insert{Table: m[1], Values: splitValues(m[2])}, nil
	}

	if m := updateRegex.FindStringSubmatch(t); m != nil {
		return &ast.Update{
			Table:     m[1],
			SetColumn: m[2],
			SetValue:  parseValue(m[3]),
			Where: &ast.Where{Condition: &ast.SimpleCondition{
				Column:   m[4],
				Operator: "=",
				Value:    parseValue(m[5]),
			}},
		}, nil
	}

	if m := deleteRegex.FindStringSubmatch(t); m != nil {
		return &ast.Delete{
			Table: m[1],
			Where: &ast.Where{Condition: &ast.SimpleCondition{
				Column:   m[2],
				Operator: m[3],
				Value:    parseValue(m[4]),
			}},
		}, nil
	}

	if m := alterRegex.FindStringSubmatch(t); m != nil {
		var columns []string
		for _, part := range strings.Split(m[2], ",") {
			column := strings.TrimSpace(strings.ReplaceAll(part, "DROP COLUMN", ""))
			columns = append(columns, column)
		}
		return &ast.AlterTable{Table: m[1], Action: "DROP COLUMN", Columns: columns}, nil
	}

	if m := distinctRegex.FindStringSubmatch(t); m != nil {
		return &ast.Select{Columns: []string{m[1]}, Table: m[2], Distinct: true}, nil
	}

	if m := countRegex.FindStringSubmatch(t); m != nil {
		column := ""
		if m[1] != "*" {
			column = m[1]
		}
		return &ast.Select{
			Columns:   []string{"COUNT(*)"},
			Table:     m[2],
			Aggregate: &ast.Aggregate{Function: "COUNT", Column: column},
		}, nil
	}

	if m := sumRegex.FindStringSubmatch(t); m != nil {
		column := ""
		if m[1] != "*" {
			column = m[1]
		}
		return &ast.Select{
			Columns:   []string{"SUM(" + m[1] + ")"},
			Table:     m[2],
			Aggregate: &ast.Aggregate{Function: "SUM", Column: column},
		}, nil
	}

	m := selectRegex.FindStringSubmatch(t)
	if m == nil {
		return nil, errors.Errorf("Could not parse DSL %q", dsl)
	}

	columns := []string{"*"}
	if m[1] != "*" {
		columns = nil
		for _, column := range strings.Split(m[1], ",") {
			columns = append(columns, strings.TrimSpace(column))
		}
	}

	selectNode := &ast.Select{Columns: columns, Table: m[2]}
	selectNode.Where = parseDSLWhere(t)

	if m = orderByRegex.FindStringSubmatch(t); m != nil {
		direction := m[2]
		if direction == "" {
			direction = "ASC"
		}
		selectNode.OrderBy = &ast.OrderBy{Column: m[1], Direction: direction}
	}

	if m = groupByRegex.FindStringSubmatch(t); m != nil {
		selectNode.GroupBy = &ast.GroupBy{Column: m[1]}
	}

	return selectNode, nil
}

func parseDSLWhere(t string) *ast.Where {
	if m := betweenRegex.FindStringSubmatch(t); m != nil {
		return &ast.Where{Condition: &ast.BetweenCondition{Column: m[1], Low: m[2], High: m[3]}}
	}

	if m := inRegex.FindStringSubmatch(t); m != nil {
		return &ast.Where{Condition: &ast.InCondition{Column: m[1], Values: splitValues(m[2])}}
	}

	if m := likeRegex.FindStringSubmatch(t); m != nil {
		return &ast.Where{Condition: &ast.LikeCondition{Column: m[1], Pattern: m[2]}}
	}

	if m := compoundRegex.FindStringSubmatch(t); m != nil {
		left := &ast.SimpleCondition{Column: m[1], Operator: m[2], Value: parseValue(m[3])}
		right := &ast.SimpleCondition{Column: m[5], Operator: m[6], Value: parseValue(m[7])}
		if m[4] == "AND" {
			return &ast.Where{Condition: &ast.AndCondition{Left: left, Right: right}}
		}
		return &ast.Where{Condition: &ast.OrCondition{Left: left, Right: right}}
	}

	if m := simpleWhereRegex.FindStringSubmatch(t); m != nil {
		return &ast.Where{Condition: &ast.SimpleCondition{
			Column:   m[1],
			Operator: m[2],
			Value:    parseValue(strings.TrimSpace(m[3])),
		}}
	}

	return nil
}

// splitValues splits a comma separated DSL value list.
func splitValues(valueList string) []any {
	parts := strings.Split(valueList, ",")
	values := make([]any, 0, len(parts))
	for _, part := range parts {
		values = append(values, parseValue(strings.TrimSpace(part)))
	}
	return values
}

// parseValue strips the quotes of a DSL string literal, so that sqlgen adds
// them back consistently. Everything else stays as bare text.
func parseValue(raw string) any {
	if len(raw) >= 2 {
		if (strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'")) ||
			(strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`)) {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

// Result is the outcome of the legacy translation. Node is nil when the DSL
// could not be re-parsed.
type Result struct {
	DSL  string
	Node ast.Node
	SQL  string
}

// Translate runs the full legacy path: English → DSL → AST → SQL. It never
// fails, a total miss yields the DSL error comment as SQL.
func Translate(text string) Result {
	dsl := EnglishToDSL(text)

	node, err := ParseDSL(dsl)
	if err != nil {
		return Result{DSL: dsl, SQL: DSLErrorComment}
	}

	sql, err := sqlgen.Generate(node)
	if err != nil {
		return Result{DSL: dsl, SQL: DSLErrorComment}
	}

	return Result{DSL: dsl, Node: node, SQL: sql}
}
