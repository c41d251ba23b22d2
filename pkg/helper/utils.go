package helper

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

// AlnumOnly drops every rune that is not a letter or a digit.
func AlnumOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// QuoteJQL wraps a value in double quotes, escaping quotes and backslashes.
func QuoteJQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func quoteList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		quoted = append(quoted, QuoteJQL(v))
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}

// BuildJQL translates a query into JQL. A query with a ParentKey is a child
// search; anything else is a parent search. Empty fields add no clause.
func BuildJQL(q types.Query) string {
	clauses := []string{}

	if q.ParentKey != "" {
		clauses = append(clauses, fmt.Sprintf("parent in (%s)", QuoteJQL(q.ParentKey)))
	} else {
		if q.Project != "" {
			clauses = append(clauses, fmt.Sprintf("project in (%s)", QuoteJQL(q.Project)))
		}
		if q.IssueType != "" {
			clauses = append(clauses, fmt.Sprintf("type = %s", QuoteJQL(q.IssueType)))
		}
	}

	if len(q.Statuses) > 0 {
		clauses = append(clauses, fmt.Sprintf("status in %s", quoteList(q.Statuses)))
	}

	if q.ParentKey == "" && q.SummaryText != "" {
		clauses = append(clauses, fmt.Sprintf("summary ~ %s", QuoteJQL(q.SummaryText)))
	}

	return strings.Join(clauses, " AND ")
}
