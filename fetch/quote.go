package fetch

import "strings"

// quoteIdentifier quotes a relation or column name when required. DuckDB
// uses double quotes for identifiers.
func quoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}
	c := name[0]
	if !isLetter(c) && c != '_' {
		return true
	}
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return true
		}
	}

	// Reserved words (the subset likely to show up as relation names).
	switch strings.ToUpper(name) {
	case "SELECT", "FROM", "WHERE", "AND", "OR", "NOT", "NULL", "TRUE",
		"FALSE", "TABLE", "ORDER", "BY", "GROUP", "LIMIT", "IN", "IS",
		"LIKE", "BETWEEN", "CASE", "WHEN", "THEN", "ELSE", "END", "AS",
		"DATE", "TIME", "TIMESTAMP", "CAST", "VALUES", "SET":
		return true
	}
	return false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
