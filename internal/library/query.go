package library

import (
	"fmt"
	"sort"
	"strings"
)

// queryFields maps selector names to columns.
var queryFields = map[string]string{
	"path":                 "path",
	"artist":               "artist",
	"title":                "title",
	"mb_trackid":           "mb_trackid",
	"work_id":              "work_id",
	"parent_work":          "parent_work",
	"parent_work_disambig": "parent_work_disambig",
	"parent_composer":      "parent_composer",
	"parent_composer_sort": "parent_composer_sort",
}

// QueryFields lists the selector names accepted in `field:value` terms.
func QueryFields() []string {
	names := make([]string, 0, len(queryFields))
	for name := range queryFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// buildQuery turns selection terms into a WHERE clause. A `field:value` term
// is a case-insensitive substring match on that column; `field:` with no
// value matches items where the column is empty. Bare words match artist or
// title. A term splits at its first colon only, so `title:Op. 2: Allegro`
// matches titles containing "Op. 2: Allegro"; a bare word that contains a
// colon is therefore read as a field selector.
func buildQuery(terms []string) (string, []any, error) {
	var (
		clauses []string
		args    []any
	)
	for _, raw := range terms {
		term := strings.TrimSpace(raw)
		if term == "" {
			continue
		}
		field, value, hasField := strings.Cut(term, ":")
		if !hasField {
			clauses = append(clauses, `(artist LIKE ? ESCAPE '\' OR title LIKE ? ESCAPE '\')`)
			pattern := likePattern(term)
			args = append(args, pattern, pattern)
			continue
		}
		column, ok := queryFields[strings.ToLower(strings.TrimSpace(field))]
		if !ok {
			return "", nil, fmt.Errorf("unknown query field %q (valid: %s)", field, strings.Join(QueryFields(), ", "))
		}
		if strings.TrimSpace(value) == "" {
			clauses = append(clauses, fmt.Sprintf("COALESCE(%s, '') = ''", column))
			continue
		}
		clauses = append(clauses, fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, column))
		args = append(args, likePattern(value))
	}
	return strings.Join(clauses, " AND "), args, nil
}

func likePattern(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(value)) + "%"
}
