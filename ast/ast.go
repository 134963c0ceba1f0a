// Package ast defines the closed set of nodes a parsed query statement
// consists of. Values carried by conditions and INSERT statements are either
// int, float64 or string, depending on the literal they were parsed from.
package ast

// Node is a top-level statement. The set of implementations is closed, every
// consumer (SQL generation, serialization) handles all of them exhaustively.
type Node interface {
	node()
}

// Condition is one node of a WHERE condition tree. Compound conditions grow
// to the right: chains are folded left-to-right without operator precedence.
type Condition interface {
	condition()
}

type Select struct {
	Columns   []string
	Table     string
	Where     *Where
	OrderBy   *OrderBy
	GroupBy   *GroupBy
	Aggregate *Aggregate
	Distinct  bool
}

func (n *Select) node() {}

// Where wraps the root of a condition tree.
type Where struct {
	Condition Condition
}

// SimpleCondition is a plain "column operator value" comparison.
type SimpleCondition struct {
	Column   string
	Operator string
	Value    any
}

func (n *SimpleCondition) condition() {}

type AndCondition struct {
	Left  Condition
	Right Condition
}

func (n *AndCondition) condition() {}

type OrCondition struct {
	Left  Condition
	Right Condition
}

func (n *OrCondition) condition() {}

type BetweenCondition struct {
	Column string
	Low    any
	High   any
}

func (n *BetweenCondition) condition() {}

type InCondition struct {
	Column string
	Values []any
}

func (n *InCondition) condition() {}

type LikeCondition struct {
	Column  string
	Pattern string
}

func (n *LikeCondition) condition() {}

type OrderBy struct {
	Column    string
	Direction string
}

type GroupBy struct {
	Column string
}

// Aggregate describes an aggregate function such as COUNT or SUM. An empty
// column means the function applies to all rows ("*").
type Aggregate struct {
	Function string
	Column   string
}

type Insert struct {
	Table  string
	Values []any
}

func (n *Insert) node() {}

type Update struct {
	Table     string
	SetColumn string
	SetValue  any
	Where     *Where
}

func (n *Update) node() {}

type Delete struct {
	Table string
	Where *Where
}

func (n *Delete) node() {}

// AlterTable currently only knows the "DROP COLUMN" action, reached through
// the "delete column ... from ..." shorthand or a literal ALTER TABLE
// statement.
type AlterTable struct {
	Table   string
	Action  string
	Columns []string
}

func (n *AlterTable) node() {}
