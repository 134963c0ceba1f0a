package ast

import (
	"github.com/pkg/errors"
)

// ToMap converts a statement into a map for JSON serialization. Every node
// is tagged with a "type" entry naming its variant.
func ToMap(node Node) (map[string]any, error) {
	switch n := node.(type) {
	case *Select:
		where, err := whereToMap(n.Where)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":      "SELECT",
			"columns":   n.Columns,
			"table":     n.Table,
			"distinct":  n.Distinct,
			"where":     where,
			"order_by":  orderByToMap(n.OrderBy),
			"group_by":  groupByToMap(n.GroupBy),
			"aggregate": aggregateToMap(n.Aggregate),
		}, nil
	case *Insert:
		return map[string]any{
			"type":   "INSERT",
			"table":  n.Table,
			"values": n.Values,
		}, nil
	case *Update:
		where, err := whereToMap(n.Where)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":       "UPDATE",
			"table":      n.Table,
			"set_column": n.SetColumn,
			"set_value":  n.SetValue,
			"where":      where,
		}, nil
	case *Delete:
		where, err := whereToMap(n.Where)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":  "DELETE",
			"table": n.Table,
			"where": where,
		}, nil
	case *AlterTable:
		return map[string]any{
			"type":    "ALTER_TABLE",
			"table":   n.Table,
			"action":  n.Action,
			"columns": n.Columns,
		}, nil
	}

	return nil, errors.Errorf("Unhandled AST node type %T - this is a bug", node)
}

func whereToMap(where *Where) (map[string]any, error) {
	if where == nil {
		return nil, nil
	}

	condition, err := conditionToMap(where.Condition)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"type":      "WHERE",
		"condition": condition,
	}, nil
}

func conditionToMap(condition Condition) (map[string]any, error) {
	switch c := condition.(type) {
	case *SimpleCondition:
		return map[string]any{
			"type":     "CONDITION",
			"column":   c.Column,
			"operator": c.Operator,
			"value":    c.Value,
		}, nil
	case *AndCondition:
		left, err := conditionToMap(c.Left)
		if err != nil {
			return nil, err
		}
		right, err := conditionToMap(c.Right)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":  "AND",
			"left":  left,
			"right": right,
		}, nil
	case *OrCondition:
		left, err := conditionToMap(c.Left)
		if err != nil {
			return nil, err
		}
		right, err := conditionToMap(c.Right)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":  "OR",
			"left":  left,
			"right": right,
		}, nil
	case *BetweenCondition:
		return map[string]any{
			"type":   "BETWEEN",
			"column": c.Column,
			"low":    c.Low,
			"high":   c.High,
		}, nil
	case *InCondition:
		return map[string]any{
			"type":   "IN",
			"column": c.Column,
			"values": c.Values,
		}, nil
	case *LikeCondition:
		return map[string]any{
			"type":    "LIKE",
			"column":  c.Column,
			"pattern": c.Pattern,
		}, nil
	}

	return nil, errors.Errorf("Unhandled condition type %T - this is a bug", condition)
}

func orderByToMap(orderBy *OrderBy) map[string]any {
	if orderBy == nil {
		return nil
	}
	return map[string]any{
		"type":      "ORDER_BY",
		"column":    orderBy.Column,
		"direction": orderBy.Direction,
	}
}

func groupByToMap(groupBy *GroupBy) map[string]any {
	if groupBy == nil {
		return nil
	}
	return map[string]any{
		"type":   "GROUP_BY",
		"column": groupBy.Column,
	}
}

func aggregateToMap(aggregate *Aggregate) map[string]any {
	if aggregate == nil {
		return nil
	}

	var column any
	if aggregate.Column != "" {
		column = aggregate.Column
	}

	return map[string]any{
		"type":     "AGGREGATE",
		"function": aggregate.Function,
		"column":   column,
	}
}
