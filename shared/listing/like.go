package listing

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains returns the LIKE pattern matching term anywhere, lower-cased and with
// wildcards escaped. Use it with Like.
func Contains(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// Like is a case-insensitive LIKE condition on column for a Contains pattern
func Like(column string) string {
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}
