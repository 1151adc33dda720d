package postgres

import "strings"

// orderClause translates an API ordering value ("field" or "-field") into
// a SQL ORDER BY expression using a per-repo column whitelist. Only
// whitelisted column names ever reach the query; unknown fields fall back
// to the given default.
func orderClause(ordering string, columns map[string]string, fallback string) string {
	field := strings.TrimPrefix(ordering, "-")
	col, ok := columns[field]
	if !ok {
		return fallback
	}
	if strings.HasPrefix(ordering, "-") {
		return col + " DESC"
	}
	return col + " ASC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern for ILIKE,
// escaping the LIKE metacharacters in the user-supplied term.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
