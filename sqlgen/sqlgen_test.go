package sqlgen

import (
	"nlsql/ast"
	"nlsql/util"
	"testing"
)

func generate(t *testing.T, node ast.Node) string {
	sql, err := Generate(node)
	util.AssertNil(t, err)
	return sql
}

func TestGenerate_selectStar(t *testing.T) {
	// Arrange
	node := &ast.Select{Columns: []string{"*"}, Table: "users"}

	// Act & Assert
	util.AssertEqual(t, "SELECT * FROM users;", generate(t, node))
}

func TestGenerate_selectColumnList(t *testing.T) {
	// Arrange
	node := &ast.Select{Columns: []string{"name", "age"}, Table: "users"}

	// Act & Assert
	util.AssertEqual(t, "SELECT name, age FROM users;", generate(t, node))
}

func TestGenerate_selectDistinct(t *testing.T) {
	// Arrange
	node := &ast.Select{Columns: []string{"city"}, Table: "customers", Distinct: true}

	// Act & Assert
	util.AssertEqual(t, "SELECT DISTINCT city FROM customers;", generate(t, node))
}

func TestGenerate_selectWithWhere(t *testing.T) {
	// Arrange
	node := &ast.Select{
		Columns: []string{"*"},
		Table:   "products",
		Where: &ast.Where{
			Condition: &ast.SimpleCondition{Column: "price", Operator: ">", Value: 100},
		},
	}

	// Act & Assert
	util.AssertEqual(t, "SELECT * FROM products WHERE price > 100;", generate(t, node))
}

func TestGenerate_selectWithOrderAndGroupBy(t *testing.T) {
	// Arrange
	node := &ast.Select{
		Columns: []string{"city"},
		Table:   "customers",
		OrderBy: &ast.OrderBy{Column: "city", Direction: "DESC"},
		GroupBy: &ast.GroupBy{Column: "city"},
	}

	// Act & Assert
	util.AssertEqual(t, "SELECT city FROM customers ORDER BY city DESC GROUP BY city;", generate(t, node))
}

func TestGenerate_aggregateTakesPrecedenceOverColumns(t *testing.T) {
	// Arrange
	node := &ast.Select{
		Columns:   []string{"COUNT(*)"},
		Table:     "users",
		Aggregate: &ast.Aggregate{Function: "COUNT"},
	}

	// Act & Assert
	util.AssertEqual(t, "SELECT COUNT(*) FROM users;", generate(t, node))
}

func TestGenerate_sumAggregateWithColumn(t *testing.T) {
	// Arrange
	node := &ast.Select{
		Columns:   []string{"SUM(salary)"},
		Table:     "employees",
		Aggregate: &ast.Aggregate{Function: "SUM", Column: "salary"},
	}

	// Act & Assert
	util.AssertEqual(t, "SELECT SUM(salary) FROM employees;", generate(t, node))
}

func TestGenerate_andConditionStaysFlat(t *testing.T) {
	// Arrange
	node := &ast.Select{
		Columns: []string{"*"},
		Table:   "users",
		Where: &ast.Where{
			Condition: &ast.AndCondition{
				Left:  &ast.SimpleCondition{Column: "a", Operator: "=", Value: 1},
				Right: &ast.SimpleCondition{Column: "b", Operator: "=", Value: 2},
			},
		},
	}

	// Act & Assert
	util.AssertEqual(t, "SELECT * FROM users WHERE a = 1 AND b = 2;", generate(t, node))
}

func TestGenerate_orConditionIsParenthesized(t *testing.T) {
	// Arrange
	node := &ast.Select{
		Columns: []string{"*"},
		Table:   "users",
		Where: &ast.Where{
			Condition: &ast.OrCondition{
				Left: &ast.AndCondition{
					Left:  &ast.SimpleCondition{Column: "a", Operator: "=", Value: 1},
					Right: &ast.SimpleCondition{Column: "b", Operator: "=", Value: 2},
				},
				Right: &ast.SimpleCondition{Column: "c", Operator: "=", Value: 3},
			},
		},
	}

	// Act & Assert
	util.AssertEqual(t, "SELECT * FROM users WHERE (a = 1 AND b = 2 OR c = 3);", generate(t, node))
}

func TestGenerate_betweenCondition(t *testing.T) {
	// Arrange
	node := &ast.Select{
		Columns: []string{"*"},
		Table:   "users",
		Where: &ast.Where{
			Condition: &ast.BetweenCondition{Column: "age", Low: 20, High: 30},
		},
	}

	// Act & Assert
	util.AssertEqual(t, "SELECT * FROM users WHERE age BETWEEN 20 AND 30;", generate(t, node))
}

func TestGenerate_inCondition(t *testing.T) {
	// Arrange
	node := &ast.Select{
		Columns: []string{"*"},
		Table:   "users",
		Where: &ast.Where{
			Condition: &ast.InCondition{Column: "city", Values: []any{"berlin", "hamburg", 3}},
		},
	}

	// Act & Assert
	util.AssertEqual(t, "SELECT * FROM users WHERE city IN ('berlin', 'hamburg', 3);", generate(t, node))
}

func TestGenerate_likeConditionWrapsPatternInWildcards(t *testing.T) {
	// Arrange
	node := &ast.Select{
		Columns: []string{"*"},
		Table:   "users",
		Where: &ast.Where{
			Condition: &ast.LikeCondition{Column: "name", Pattern: "an"},
		},
	}

	// Act & Assert
	util.AssertEqual(t, "SELECT * FROM users WHERE name LIKE '%an%';", generate(t, node))
}

func TestGenerate_likeConditionKeepsExistingWildcards(t *testing.T) {
	// Arrange
	node := &ast.Select{
		Columns: []string{"*"},
		Table:   "users",
		Where: &ast.Where{
			Condition: &ast.LikeCondition{Column: "name", Pattern: "an%"},
		},
	}

	// Act & Assert
	util.AssertEqual(t, "SELECT * FROM users WHERE name LIKE 'an%';", generate(t, node))
}

func TestGenerate_insert(t *testing.T) {
	// Arrange
	node := &ast.Insert{Table: "users", Values: []any{1, "John", 25}}

	// Act & Assert
	util.AssertEqual(t, "INSERT INTO users VALUES (1, 'John', 25);", generate(t, node))
}

func TestGenerate_update(t *testing.T) {
	// Arrange
	node := &ast.Update{
		Table:     "users",
		SetColumn: "age",
		SetValue:  25,
		Where: &ast.Where{
			Condition: &ast.SimpleCondition{Column: "id", Operator: "=", Value: 10},
		},
	}

	// Act & Assert
	util.AssertEqual(t, "UPDATE users SET age = 25 WHERE id = 10;", generate(t, node))
}

func TestGenerate_updateWithoutWhere(t *testing.T) {
	// Arrange
	node := &ast.Update{Table: "users", SetColumn: "name", SetValue: "bob"}

	// Act & Assert
	util.AssertEqual(t, "UPDATE users SET name = 'bob';", generate(t, node))
}

func TestGenerate_delete(t *testing.T) {
	// Arrange
	node := &ast.Delete{
		Table: "users",
		Where: &ast.Where{
			Condition: &ast.SimpleCondition{Column: "id", Operator: "=", Value: 5},
		},
	}

	// Act & Assert
	util.AssertEqual(t, "DELETE FROM users WHERE id = 5;", generate(t, node))
}

func TestGenerate_alterTableDropsMultipleColumns(t *testing.T) {
	// Arrange
	node := &ast.AlterTable{Table: "users", Action: "DROP COLUMN", Columns: []string{"age", "height"}}

	// Act & Assert
	util.AssertEqual(t, "ALTER TABLE users DROP COLUMN age, DROP COLUMN height;", generate(t, node))
}

func TestFormatValue(t *testing.T) {
	// Act & Assert
	util.AssertEqual(t, "25", FormatValue(25))
	util.AssertEqual(t, "45.67", FormatValue(45.67))
	util.AssertEqual(t, "'John'", FormatValue("John"))
	util.AssertEqual(t, "''", FormatValue(""))

	// Strings that look like numbers stay bare
	util.AssertEqual(t, "25", FormatValue("25"))
	util.AssertEqual(t, "-3", FormatValue("-3"))
	util.AssertEqual(t, "4.5", FormatValue("4.5"))
}
