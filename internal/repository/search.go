package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters in user-supplied search text so
// the surrounding wildcards are the only ones in the pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
