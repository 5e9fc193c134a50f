package services

import (
	"regexp"
	"strings"

	"github.com/TFMV/azquery/pkg/models"
)

// mutatingKeywords are the leading tokens that mark a statement for commit.
var mutatingKeywords = map[string]struct{}{
	"insert": {},
	"update": {},
	"delete": {},
}

// StatementClassifier sorts statements into mutating and projecting.
//
// The decision looks only at the first whitespace-delimited token, compared
// case-insensitively. It does not parse SQL: a statement that opens with a
// common table expression or a comment is classified as projecting even if it
// modifies data.
type StatementClassifier struct {
	dangerousPatterns []*regexp.Regexp
}

// NewStatementClassifier creates a new statement classifier.
func NewStatementClassifier() *StatementClassifier {
	return &StatementClassifier{
		dangerousPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)DROP\s+DATABASE`),
			regexp.MustCompile(`(?i)DROP\s+SCHEMA`),
			regexp.MustCompile(`(?i)^\s*TRUNCATE\s+`),
			regexp.MustCompile(`(?i)DELETE\s+FROM\s+.*WHERE\s+1\s*=\s*1`),
			regexp.MustCompile(`(?i)UPDATE\s+.*SET\s+.*WHERE\s+1\s*=\s*1`),
			regexp.MustCompile(`(?i)^\s*SHUTDOWN`),
		},
	}
}

// ClassifyStatement returns the kind of the statement.
func (c *StatementClassifier) ClassifyStatement(sql string) models.StatementKind {
	if _, ok := mutatingKeywords[firstToken(sql)]; ok {
		return models.StatementMutating
	}
	return models.StatementProjecting
}

// IsDangerous returns true if the statement matches a destructive pattern.
// It is advisory only; nothing is blocked.
func (c *StatementClassifier) IsDangerous(sql string) bool {
	for _, pattern := range c.dangerousPatterns {
		if pattern.MatchString(sql) {
			return true
		}
	}
	return false
}

func firstToken(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
