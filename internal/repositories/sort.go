package repositories

import (
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// applySort turns the parsed sort[field]=asc|desc query parameters into
// ORDER BY clauses. Only whitelisted fields are honored; anything else
// falls through to the caller's default ordering. Fields are applied in
// alphabetical order so the generated SQL is stable.
func applySort(builder sq.SelectBuilder, sortParams map[string]string, columns map[string]string, fallback string) sq.SelectBuilder {
	fields := make([]string, 0, len(sortParams))
	for field := range sortParams {
		if _, ok := columns[field]; ok {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return builder.OrderBy(fallback)
	}
	sort.Strings(fields)

	clauses := make([]string, 0, len(fields))
	for _, field := range fields {
		direction := "ASC"
		if strings.EqualFold(sortParams[field], "desc") {
			direction = "DESC"
		}
		clauses = append(clauses, columns[field]+" "+direction)
	}
	return builder.OrderBy(clauses...)
}
