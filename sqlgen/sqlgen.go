// Package sqlgen renders statement nodes into SQL text. Generation is total
// over the closed node set, an unhandled node means an inconsistency between
// this package and the ast package.
package sqlgen

import (
	"fmt"
	"github.com/pkg/errors"
	"nlsql/ast"
	"strconv"
	"strings"
)

// Generate renders the given statement as SQL, including the trailing
// semicolon.
func Generate(node ast.Node) (string, error) {
	switch n := node.(type) {
	case *ast.Select:
		return generateSelect(n)
	case *ast.Insert:
		formattedValues := make([]string, 0, len(n.Values))
		for _, value := range n.Values {
			formattedValues = append(formattedValues, FormatValue(value))
		}
		return fmt.Sprintf("INSERT INTO %s VALUES (%s);", n.Table, strings.Join(formattedValues, ", ")), nil
	case *ast.Update:
		sql := fmt.Sprintf("UPDATE %s SET %s = %s", n.Table, n.SetColumn, FormatValue(n.SetValue))
		whereSql, err := generateWhere(n.Where)
		if err != nil {
			return "", err
		}
		return sql + whereSql + ";", nil
	case *ast.Delete:
		sql := fmt.Sprintf("DELETE FROM %s", n.Table)
		whereSql, err := generateWhere(n.Where)
		if err != nil {
			return "", err
		}
		return sql + whereSql + ";", nil
	case *ast.AlterTable:
		if n.Action == "DROP COLUMN" {
			dropParts := make([]string, 0, len(n.Columns))
			for _, column := range n.Columns {
				dropParts = append(dropParts, "DROP COLUMN "+column)
			}
			return fmt.Sprintf("ALTER TABLE %s %s;", n.Table, strings.Join(dropParts, ", ")), nil
		}
		return fmt.Sprintf("ALTER TABLE %s %s;", n.Table, n.Action), nil
	}

	return "", errors.Errorf("Unhandled AST node type %T - this is a bug", node)
}

func generateSelect(node *ast.Select) (string, error) {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	if node.Distinct {
		sb.WriteString("DISTINCT ")
	}

	if node.Aggregate != nil {
		column := node.Aggregate.Column
		if column == "" {
			column = "*"
		}
		sb.WriteString(fmt.Sprintf("%s(%s)", node.Aggregate.Function, column))
	} else {
		sb.WriteString(strings.Join(node.Columns, ", "))
	}

	sb.WriteString(" FROM ")
	sb.WriteString(node.Table)

	whereSql, err := generateWhere(node.Where)
	if err != nil {
		return "", err
	}
	sb.WriteString(whereSql)

	if node.OrderBy != nil {
		sb.WriteString(fmt.Sprintf(" ORDER BY %s %s", node.OrderBy.Column, node.OrderBy.Direction))
	}

	if node.GroupBy != nil {
		sb.WriteString(fmt.Sprintf(" GROUP BY %s", node.GroupBy.Column))
	}

	sb.WriteString(";")
	return sb.String(), nil
}

func generateWhere(where *ast.Where) (string, error) {
	if where == nil {
		return "", nil
	}

	conditionSql, err := generateCondition(where.Condition)
	if err != nil {
		return "", err
	}

	return " WHERE " + conditionSql, nil
}

// generateCondition renders a condition tree. AND chains stay flat while OR
// conditions are always parenthesized.
func generateCondition(condition ast.Condition) (string, error) {
	switch c := condition.(type) {
	case *ast.SimpleCondition:
		return fmt.Sprintf("%s %s %s", c.Column, c.Operator, FormatValue(c.Value)), nil
	case *ast.AndCondition:
		left, err := generateCondition(c.Left)
		if err != nil {
			return "", err
		}
		right, err := generateCondition(c.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s AND %s", left, right), nil
	case *ast.OrCondition:
		left, err := generateCondition(c.Left)
		if err != nil {
			return "", err
		}
		right, err := generateCondition(c.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s OR %s)", left, right), nil
	case *ast.BetweenCondition:
		return fmt.Sprintf("%s BETWEEN %v AND %v", c.Column, c.Low, c.High), nil
	case *ast.InCondition:
		formattedValues := make([]string, 0, len(c.Values))
		for _, value := range c.Values {
			formattedValues = append(formattedValues, FormatValue(value))
		}
		return fmt.Sprintf("%s IN (%s)", c.Column, strings.Join(formattedValues, ", ")), nil
	case *ast.LikeCondition:
		pattern := c.Pattern
		if !strings.Contains(pattern, "%") {
			pattern = "%" + pattern + "%"
		}
		return fmt.Sprintf("%s LIKE '%s'", c.Column, pattern), nil
	}

	return "", errors.Errorf("Unhandled condition type %T - this is a bug", condition)
}

// FormatValue renders a literal for SQL text. Numbers stay bare, everything
// else is wrapped in single quotes. A string that merely looks like a number
// also stays bare, so an unquoted "25" from the input behaves like a number.
func FormatValue(value any) string {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		if isNumeric(v) {
			return v
		}
		return "'" + v + "'"
	}

	return fmt.Sprintf("'%v'", value)
}

// isNumeric reports whether the string is an optionally signed integer or
// parses as a floating point number.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}

	digits := s
	if strings.HasPrefix(digits, "-") {
		digits = digits[1:]
	}

	allDigits := digits != ""
	for _, char := range digits {
		if char < '0' || char > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		return true
	}

	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
