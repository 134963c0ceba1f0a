// Package fallback implements the legacy translation path: ordered regex
// rules map raw English text to an intermediate SQL-like DSL string, which
// is then re-parsed into statement nodes and rendered by sqlgen. The
// pipeline only calls this path when the tokenizer/parser pipeline failed.
package fallback

import (
	"github.com/hauke96/sigolo/v2"
	"regexp"
	"strings"
)

// NoMatchSentinel is returned as DSL when none of the translation rules
// matched the input.
const NoMatchSentinel = "No matching rule found"

// DSLErrorComment is the SQL output when the DSL could not be re-parsed.
const DSLErrorComment = "-- Error: Could not parse DSL"

type rule struct {
	pattern *regexp.Regexp
	build   func(match []string) string
}

// phrase replacements for the DSL rules, longest phrase first so that e.g.
// "greater than or equal to" is not corrupted by its "greater than" prefix.
var operatorPhrases = []struct {
	phrase string
	symbol string
}{
	{"greater than or equal to", ">="},
	{"less than or equal to", "<="},
	{"greater than", ">"},
	{"less than", "<"},
	{"is equal to", "="},
	{"equal to", "="},
	{"same as", "="},
	{"equals", "="},
	{"equal", "="},
}

// dslRules are tried top to bottom, the first match wins.
var dslRules = []rule{
	{
		// SELECT all, with optional column and optional WHERE
		pattern: regexp.MustCompile(`^(select|show|list) all(?: (\w+))? (?:of|from) (\w+)(?:\s+where\s+(\w+)\s*(>=|<=|=|>|<)\s*(\d+))?`),
		build: func(m []string) string {
			query := "SELECT * FROM " + m[3]
			if m[2] != "" {
				query = "SELECT " + m[2] + " FROM " + m[3]
			}
			if m[4] != "" {
				query += " WHERE " + m[4] + " " + m[5] + " " + m[6]
			}
			return query
		},
	},
	{
		// SELECT column with a single condition
		pattern: regexp.MustCompile(`^(select|show|list) (?:all\s+)?(\w+) from (\w+) where (\w+) (>|<|=) (\d+)`),
		build: func(m []string) string {
			return "SELECT " + m[2] + " FROM " + m[3] + " WHERE " + m[4] + " " + m[5] + " " + m[6]
		},
	},
	{
		// COUNT / HOW MANY
		pattern: regexp.MustCompile(`^(count|how many)\s+(\w+)(?:\s+from\s+(\w+))?(?:\s+where\s+(\w+)\s*(=|>|<)\s*(\d+))?`),
		build: func(m []string) string {
			column := m[2]
			table := m[3]
			if table == "" {
				table = column
				column = ""
			}

			query := "SELECT COUNT(*) FROM " + table
			if column != "" {
				query = "SELECT COUNT(" + column + ") FROM " + table
			}
			if m[4] != "" {
				query += " WHERE " + m[4] + " " + m[5] + " " + m[6]
			}
			return query
		},
	},
	{
		// SUM / TOTAL with optional column and optional WHERE
		pattern: regexp.MustCompile(`^(sum|total)(?: (\w+))? from (\w+)(?: where (\w+)\s*=\s*(\w+))?`),
		build: func(m []string) string {
			query := "SELECT SUM(*) FROM " + m[3]
			if m[2] != "" {
				query = "SELECT SUM(" + m[2] + ") FROM " + m[3]
			}
			if m[4] != "" {
				query += " WHERE " + m[4] + " = " + m[5]
			}
			return query
		},
	},
	{
		// ORDER BY with WHERE
		pattern: regexp.MustCompile(`^(select|show) all (\w+) where (\w+) (>=|<=|>|<|=) (\w+) order by(?: (\w+))?(?: (asc|desc))?`),
		build: func(m []string) string {
			orderColumn := m[6]
			if orderColumn == "" {
				orderColumn = "id"
			}
			query := "SELECT * FROM " + m[2] + " WHERE " + m[3] + " " + m[4] + " " + m[5] + " ORDER BY " + orderColumn
			if m[7] != "" {
				query += " " + strings.ToUpper(m[7])
			}
			return query
		},
	},
	{
		// ORDER BY without WHERE
		pattern: regexp.MustCompile(`^(select|show) all (\w+) order by(?: (\w+))?(?: (asc|desc))?`),
		build: func(m []string) string {
			orderColumn := m[3]
			if orderColumn == "" {
				orderColumn = "id"
			}
			query := "SELECT * FROM " + m[2] + " ORDER BY " + orderColumn
			if m[4] != "" {
				query += " " + strings.ToUpper(m[4])
			}
			return query
		},
	},
	{
		// GROUP BY
		pattern: regexp.MustCompile(`^(select|show) (\w+(?:, \w+)*) from (\w+) group by (\w+)`),
		build: func(m []string) string {
			columns := strings.Split(m[2], ",")
			for i := range columns {
				columns[i] = strings.TrimSpace(columns[i])
			}
			return "SELECT " + strings.Join(columns, ", ") + " FROM " + m[3] + " GROUP BY " + m[4]
		},
	},
	{
		// Two conditions joined by AND/OR
		pattern: regexp.MustCompile(`^(select|show|display)(?:\s+(all))?(?:\s+([\w, ]+?))?(?:\s+from)?\s+(\w+)\s+where\s+(\w+)\s*(>|<|=)\s*(\d+)\s+(and|or)\s+(\w+)\s*(>|<|=)\s*(\d+)`),
		build: func(m []string) string {
			selectPart := "SELECT *"
			if m[2] == "" && m[3] != "" {
				columns := strings.Split(m[3], ",")
				for i := range columns {
					columns[i] = strings.TrimSpace(columns[i])
				}
				selectPart = "SELECT " + strings.Join(columns, ",")
			}
			return selectPart + " FROM " + m[4] +
				" WHERE " + m[5] + " " + m[6] + " " + m[7] +
				" " + strings.ToUpper(m[8]) + " " + m[9] + " " + m[10] + " " + m[11]
		},
	},
	{
		// INSERT
		pattern: regexp.MustCompile(`^(insert into|add new row into)\s+(\w+)\s+values\s+(.+)`),
		build: func(m []string) string {
			return "INSERT INTO " + m[2] + " VALUES (" + m[3] + ")"
		},
	},
	{
		// UPDATE
		pattern: regexp.MustCompile(`^(update|change)\s+(\w+)\s+set\s+(\w+)\s*=\s*([\w' ]+?)\s+where\s+(\w+)\s*=\s*([\w' ]+)`),
		build: func(m []string) string {
			return "UPDATE " + m[2] + " SET " + m[3] + " = " + strings.TrimSpace(m[4]) +
				" WHERE " + m[5] + " = " + strings.TrimSpace(m[6])
		},
	},
	{
		// DELETE
		pattern: regexp.MustCompile(`^(delete from|remove from)\s+(\w+)\s+where\s+(\w+)\s*(=|>|<)\s*([\w' ]+)`),
		build: func(m []string) string {
			return "DELETE FROM " + m[2] + " WHERE " + m[3] + " " + m[4] + " " + strings.TrimSpace(m[5])
		},
	},
	{
		// DROP COLUMN
		pattern: regexp.MustCompile(`^(delete|remove)\s+(column|columns|col)\s+([\w, ]+)\s+from\s+(\w+)`),
		build: func(m []string) string {
			columns := strings.Split(m[3], ",")
			dropParts := make([]string, 0, len(columns))
			for _, column := range columns {
				dropParts = append(dropParts, "DROP COLUMN "+strings.TrimSpace(column))
			}
			return "ALTER TABLE " + m[4] + " " + strings.Join(dropParts, ", ")
		},
	},
	{
		// LIKE / CONTAINS
		pattern: regexp.MustCompile(`^(find|search)\s+(\w+)\s+where\s+(\w+)\s+(contains|like)\s+'(.+)'`),
		build: func(m []string) string {
			return "SELECT * FROM " + m[2] + " WHERE " + m[3] + " LIKE '%" + m[5] + "%'"
		},
	},
	{
		// BETWEEN
		pattern: regexp.MustCompile(`^select\s+(\w+)\s+where\s+(\w+)\s+between\s+(\d+)\s+and\s+(\d+)`),
		build: func(m []string) string {
			return "SELECT * FROM " + m[1] + " WHERE " + m[2] + " BETWEEN " + m[3] + " AND " + m[4]
		},
	},
	{
		// IN
		pattern: regexp.MustCompile(`^select\s+(\w+)\s+where\s+(\w+)\s+in\s+(.+)`),
		build: func(m []string) string {
			values := strings.Split(m[3], ",")
			for i := range values {
				values[i] = strings.TrimSpace(values[i])
			}
			return "SELECT * FROM " + m[1] + " WHERE " + m[2] + " IN (" + strings.Join(values, ",") + ")"
		},
	},
	{
		// DISTINCT
		pattern: regexp.MustCompile(`^select\s+(distinct|unique)\s+(\w+)\s+from\s+(\w+)`),
		build: func(m []string) string {
			return "SELECT DISTINCT " + m[2] + " FROM " + m[3]
		},
	},
	{
		// "show me X" / "give me all X"
		pattern: regexp.MustCompile(`^(?:show|give|display|get)\s+me\s+(?:all\s+)?(\w+)`),
		build: func(m []string) string {
			return "SELECT * FROM " + m[1]
		},
	},
	{
		// "get all X"
		pattern: regexp.MustCompile(`^get\s+all\s+(\w+)`),
		build: func(m []string) string {
			return "SELECT * FROM " + m[1]
		},
	},
}

// normalizeOperators replaces natural language comparison phrases with their
// symbols so the DSL rules only have to deal with symbolic operators.
func normalizeOperators(text string) string {
	t := strings.ToLower(text)

	for _, op := range operatorPhrases {
		t = strings.ReplaceAll(t, op.phrase, op.symbol)
	}

	return t
}

// EnglishToDSL translates raw English text into the intermediate SQL-like
// DSL by applying the ordered rule list. Returns NoMatchSentinel when no
// rule matched.
func EnglishToDSL(text string) string {
	t := normalizeOperators(text)

	for _, r := range dslRules {
		match := r.pattern.FindStringSubmatch(t)
		if match != nil {
			dsl := r.build(match)
			sigolo.Debugf("Fallback rule %q produced DSL %q", r.pattern.String(), dsl)
			return dsl
		}
	}

	return NoMatchSentinel
}
