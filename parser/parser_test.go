package parser

import (
	"nlsql/ast"
	"nlsql/util"
	"testing"
)

func parseText(t *testing.T, text string) ast.Node {
	node, err := ParseQueryString(text)
	util.AssertNil(t, err)
	util.AssertNotNil(t, node)
	return node
}

func TestParser_selectAll(t *testing.T) {
	// Act
	node := parseText(t, "select all from users")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, []string{"*"}, selectNode.Columns)
	util.AssertEqual(t, "users", selectNode.Table)
	util.AssertFalse(t, selectNode.Distinct)
	util.AssertNil(t, selectNode.Where)
}

func TestParser_selectStar(t *testing.T) {
	// Act
	node := parseText(t, "select * from users")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, []string{"*"}, selectNode.Columns)
	util.AssertEqual(t, "users", selectNode.Table)
}

func TestParser_selectColumnList(t *testing.T) {
	// Act
	node := parseText(t, "select name, age from users")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, []string{"name", "age"}, selectNode.Columns)
	util.AssertEqual(t, "users", selectNode.Table)
}

func TestParser_selectSingleColumn(t *testing.T) {
	// Act
	node := parseText(t, "select name from users")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, []string{"name"}, selectNode.Columns)
	util.AssertEqual(t, "users", selectNode.Table)
}

func TestParser_selectTableShorthand(t *testing.T) {
	// "select users where ..." treats the identifier as table name with an
	// implicit "*" projection.

	// Act
	node := parseText(t, "select users where age > 20")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, []string{"*"}, selectNode.Columns)
	util.AssertEqual(t, "users", selectNode.Table)
	util.AssertNotNil(t, selectNode.Where)

	condition := selectNode.Where.Condition.(*ast.SimpleCondition)
	util.AssertEqual(t, "age", condition.Column)
	util.AssertEqual(t, ">", condition.Operator)
	util.AssertEqual(t, 20, condition.Value)
}

func TestParser_selectTableShorthandAtEndOfInput(t *testing.T) {
	// Act
	node := parseText(t, "select users")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, []string{"*"}, selectNode.Columns)
	util.AssertEqual(t, "users", selectNode.Table)
}

func TestParser_selectDistinct(t *testing.T) {
	// Act
	node := parseText(t, "select distinct city from customers")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertTrue(t, selectNode.Distinct)
	util.AssertEqual(t, []string{"city"}, selectNode.Columns)
	util.AssertEqual(t, "customers", selectNode.Table)
}

func TestParser_selectMissingColumnBeforeFromFails(t *testing.T) {
	// "select from users" names no projection; instead of producing a SELECT
	// with an empty column the parser must reject the statement.

	// Act
	node, err := ParseQueryString("select from users")

	// Assert
	util.AssertNil(t, node)
	util.AssertNotNil(t, err)

	parseError := err.(*ParsingExpectedButFoundError)
	util.AssertEqual(t, "column name", parseError.ExpectedMessage)
	util.AssertEqual(t, TokenKindFrom, parseError.CurrentKind)
}

func TestParser_selectMissingColumnBeforeCommaFails(t *testing.T) {
	// Act
	node, err := ParseQueryString("select , age from users")

	// Assert
	util.AssertNil(t, node)
	util.AssertNotNil(t, err)

	parseError := err.(*ParsingExpectedButFoundError)
	util.AssertEqual(t, "column name", parseError.ExpectedMessage)
	util.AssertEqual(t, TokenKindComma, parseError.CurrentKind)
}

func TestParser_selectWithoutTableFails(t *testing.T) {
	// Act
	node, err := ParseQueryString("select")

	// Assert
	util.AssertNotNil(t, err)
	util.AssertNil(t, node)
}

func TestParser_conditionChainFoldsLeftToRight(t *testing.T) {
	// "A AND B OR C" must parse to Or(And(A, B), C), there is no precedence
	// between the two operators.

	// Act
	node := parseText(t, "select users where a = 1 and b = 2 or c = 3")

	// Assert
	selectNode := node.(*ast.Select)
	orCondition := selectNode.Where.Condition.(*ast.OrCondition)

	andCondition := orCondition.Left.(*ast.AndCondition)
	left := andCondition.Left.(*ast.SimpleCondition)
	util.AssertEqual(t, "a", left.Column)
	right := andCondition.Right.(*ast.SimpleCondition)
	util.AssertEqual(t, "b", right.Column)

	simpleCondition := orCondition.Right.(*ast.SimpleCondition)
	util.AssertEqual(t, "c", simpleCondition.Column)
}

func TestParser_betweenCondition(t *testing.T) {
	// Act
	node := parseText(t, "select users where age between 20 and 30")

	// Assert
	selectNode := node.(*ast.Select)
	betweenCondition := selectNode.Where.Condition.(*ast.BetweenCondition)
	util.AssertEqual(t, "age", betweenCondition.Column)
	util.AssertEqual(t, 20, betweenCondition.Low)
	util.AssertEqual(t, 30, betweenCondition.High)
}

func TestParser_inCondition(t *testing.T) {
	// Act
	node := parseText(t, "select users where city in ('berlin', 'hamburg', 3)")

	// Assert
	selectNode := node.(*ast.Select)
	inCondition := selectNode.Where.Condition.(*ast.InCondition)
	util.AssertEqual(t, "city", inCondition.Column)
	util.AssertEqual(t, []any{"berlin", "hamburg", 3}, inCondition.Values)
}

func TestParser_inConditionWithoutParentheses(t *testing.T) {
	// Act
	node := parseText(t, "select users where city in 'berlin', 'hamburg'")

	// Assert
	selectNode := node.(*ast.Select)
	inCondition := selectNode.Where.Condition.(*ast.InCondition)
	util.AssertEqual(t, []any{"berlin", "hamburg"}, inCondition.Values)
}

func TestParser_likeCondition(t *testing.T) {
	// Act
	node := parseText(t, "find users where name contains 'an'")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, []string{"*"}, selectNode.Columns)
	util.AssertEqual(t, "users", selectNode.Table)

	likeCondition := selectNode.Where.Condition.(*ast.LikeCondition)
	util.AssertEqual(t, "name", likeCondition.Column)
	util.AssertEqual(t, "an", likeCondition.Pattern)
}

func TestParser_valueKinds(t *testing.T) {
	// Act
	node := parseText(t, "select users where a = 20 and b = 100.5 and c = 'x' and d = word")

	// Assert
	selectNode := node.(*ast.Select)
	and3 := selectNode.Where.Condition.(*ast.AndCondition)
	and2 := and3.Left.(*ast.AndCondition)
	and1 := and2.Left.(*ast.AndCondition)

	util.AssertEqual(t, 20, and1.Left.(*ast.SimpleCondition).Value)
	util.AssertEqual(t, 100.5, and1.Right.(*ast.SimpleCondition).Value)
	util.AssertEqual(t, "x", and2.Right.(*ast.SimpleCondition).Value)
	util.AssertEqual(t, "word", and3.Right.(*ast.SimpleCondition).Value)
}

func TestParser_orderByWithDirection(t *testing.T) {
	// Act
	node := parseText(t, "select all products order by price desc")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, "products", selectNode.Table)
	util.AssertNotNil(t, selectNode.OrderBy)
	util.AssertEqual(t, "price", selectNode.OrderBy.Column)
	util.AssertEqual(t, "DESC", selectNode.OrderBy.Direction)
}

func TestParser_orderByDefaults(t *testing.T) {
	// Column defaults to "id", direction to ASC.

	// Act
	node := parseText(t, "select all from users order by")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, "id", selectNode.OrderBy.Column)
	util.AssertEqual(t, "ASC", selectNode.OrderBy.Direction)
}

func TestParser_groupBy(t *testing.T) {
	// Act
	node := parseText(t, "select city from customers group by city")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertNotNil(t, selectNode.GroupBy)
	util.AssertEqual(t, "city", selectNode.GroupBy.Column)
}

func TestParser_groupByRequiresColumn(t *testing.T) {
	// Act
	node, err := ParseQueryString("select all from users group by")

	// Assert
	util.AssertNotNil(t, err)
	util.AssertNil(t, node)
}

func TestParser_count(t *testing.T) {
	// Act
	node := parseText(t, "count users")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, []string{"COUNT(*)"}, selectNode.Columns)
	util.AssertEqual(t, "users", selectNode.Table)
	util.AssertNotNil(t, selectNode.Aggregate)
	util.AssertEqual(t, "COUNT", selectNode.Aggregate.Function)
	util.AssertEqual(t, "", selectNode.Aggregate.Column)
}

func TestParser_howMany(t *testing.T) {
	// Act
	node := parseText(t, "how many products")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, "products", selectNode.Table)
	util.AssertEqual(t, "COUNT", selectNode.Aggregate.Function)
}

func TestParser_countWithFromAndWhere(t *testing.T) {
	// Act
	node := parseText(t, "count rows from users where age > 20")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, "users", selectNode.Table)
	util.AssertNotNil(t, selectNode.Where)
}

func TestParser_sum(t *testing.T) {
	// Act
	node := parseText(t, "sum salary from employees")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, []string{"SUM(salary)"}, selectNode.Columns)
	util.AssertEqual(t, "employees", selectNode.Table)
	util.AssertEqual(t, "SUM", selectNode.Aggregate.Function)
	util.AssertEqual(t, "salary", selectNode.Aggregate.Column)
}

func TestParser_total(t *testing.T) {
	// Act
	node := parseText(t, "total sales")

	// Assert
	selectNode := node.(*ast.Select)
	util.AssertEqual(t, "sales", selectNode.Table)
	util.AssertEqual(t, "SUM", selectNode.Aggregate.Function)
}

func TestParser_insert(t *testing.T) {
	// Act
	node := parseText(t, "insert into users values 1, 'John', 25")

	// Assert
	insertNode := node.(*ast.Insert)
	util.AssertEqual(t, "users", insertNode.Table)
	util.AssertEqual(t, []any{1, "John", 25}, insertNode.Values)
}

func TestParser_insertRequiresInto(t *testing.T) {
	// Act
	node, err := ParseQueryString("insert users values 1")

	// Assert
	util.AssertNil(t, node)
	util.AssertNotNil(t, err)

	parseError := err.(*ParsingExpectedTokenKindError)
	util.AssertEqual(t, TokenKindInto, parseError.ExpectedKind)
	util.AssertEqual(t, TokenKindIdentifier, parseError.CurrentKind)
}

func TestParser_insertRequiresValues(t *testing.T) {
	// Act
	node, err := ParseQueryString("insert into users 1, 2")

	// Assert
	util.AssertNil(t, node)
	util.AssertNotNil(t, err)

	parseError := err.(*ParsingExpectedTokenKindError)
	util.AssertEqual(t, TokenKindValues, parseError.ExpectedKind)
}

func TestParser_update(t *testing.T) {
	// Act
	node := parseText(t, "update users set age = 25 where id = 10")

	// Assert
	updateNode := node.(*ast.Update)
	util.AssertEqual(t, "users", updateNode.Table)
	util.AssertEqual(t, "age", updateNode.SetColumn)
	util.AssertEqual(t, 25, updateNode.SetValue)
	util.AssertNotNil(t, updateNode.Where)

	condition := updateNode.Where.Condition.(*ast.SimpleCondition)
	util.AssertEqual(t, "id", condition.Column)
	util.AssertEqual(t, 10, condition.Value)
}

func TestParser_updateWithoutWhere(t *testing.T) {
	// Act
	node := parseText(t, "update users set name = 'bob'")

	// Assert
	updateNode := node.(*ast.Update)
	util.AssertEqual(t, "bob", updateNode.SetValue)
	util.AssertNil(t, updateNode.Where)
}

func TestParser_delete(t *testing.T) {
	// Act
	node := parseText(t, "delete from users where id = 5")

	// Assert
	deleteNode := node.(*ast.Delete)
	util.AssertEqual(t, "users", deleteNode.Table)
	util.AssertNotNil(t, deleteNode.Where)
}

func TestParser_deleteViaRemoveSynonym(t *testing.T) {
	// Act
	node := parseText(t, "remove from users where id = 5")

	// Assert
	deleteNode := node.(*ast.Delete)
	util.AssertEqual(t, "users", deleteNode.Table)
}

func TestParser_deleteColumnShorthand(t *testing.T) {
	// "delete column age from users" is a column drop, not a row deletion.

	// Act
	node := parseText(t, "delete column age from users")

	// Assert
	alterNode := node.(*ast.AlterTable)
	util.AssertEqual(t, "users", alterNode.Table)
	util.AssertEqual(t, "DROP COLUMN", alterNode.Action)
	util.AssertEqual(t, []string{"age"}, alterNode.Columns)
}

func TestParser_deleteMultipleColumns(t *testing.T) {
	// Act
	node := parseText(t, "delete columns age, height from users")

	// Assert
	alterNode := node.(*ast.AlterTable)
	util.AssertEqual(t, []string{"age", "height"}, alterNode.Columns)
}

func TestParser_alterTable(t *testing.T) {
	// Act
	node := parseText(t, "alter table users drop column age")

	// Assert
	alterNode := node.(*ast.AlterTable)
	util.AssertEqual(t, "users", alterNode.Table)
	util.AssertEqual(t, "DROP COLUMN", alterNode.Action)
	util.AssertEqual(t, []string{"age"}, alterNode.Columns)
}

func TestParser_unknownStatementFails(t *testing.T) {
	// Act
	node, err := ParseQueryString("explain users")

	// Assert
	util.AssertNil(t, node)
	util.AssertNotNil(t, err)

	parseError := err.(*ParsingExpectedButFoundError)
	util.AssertEqual(t, TokenKindIdentifier, parseError.CurrentKind)
	util.AssertEqual(t, "explain", parseError.CurrentLexeme)
}

func TestParser_missingOperatorFails(t *testing.T) {
	// Act
	node, err := ParseQueryString("select users where age 20")

	// Assert
	util.AssertNil(t, node)
	util.AssertNotNil(t, err)
}
