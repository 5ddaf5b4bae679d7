package sql

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrMultipleStatements indicates the statement text contains more than one SQL statement.
	ErrMultipleStatements = errors.New("multiple SQL statements not allowed; only single statements are permitted")

	// ErrPlaceholderMismatch indicates a statement binds a different number of parameters than expected.
	ErrPlaceholderMismatch = errors.New("placeholder count does not match expected arity")
)

// ValidationResult contains the normalized SQL and any validation errors.
type ValidationResult struct {
	NormalizedSQL string
	Placeholders  int
	Error         error
}

// ValidateAndNormalize checks SQL for multiple statements, strips the trailing
// semicolon and counts the distinct positional placeholders ($1, $2, ...).
func ValidateAndNormalize(sqlQuery string) ValidationResult {
	sqlQuery = strings.TrimSpace(sqlQuery)

	if sqlQuery == "" {
		return ValidationResult{NormalizedSQL: sqlQuery}
	}

	normalized := stripTrailingSemicolon(sqlQuery)

	if hasSemicolonOutsideStrings(normalized) {
		return ValidationResult{Error: ErrMultipleStatements}
	}

	return ValidationResult{
		NormalizedSQL: normalized,
		Placeholders:  CountPlaceholders(normalized),
	}
}

// ValidateStatement verifies a statement is a single statement binding exactly arity parameters.
func ValidateStatement(sqlQuery string, arity int) error {
	result := ValidateAndNormalize(sqlQuery)
	if result.Error != nil {
		return result.Error
	}
	if result.Placeholders != arity {
		return fmt.Errorf("%w: want %d, got %d", ErrPlaceholderMismatch, arity, result.Placeholders)
	}
	return nil
}

// ValidateCatalog checks every statement of the catalog. DDL statements must bind
// nothing; parameterized statements must bind exactly their tuple arity.
func ValidateCatalog() error {
	for _, stmt := range append(append([]string{}, CreateTableQueries...), DropTableQueries...) {
		if err := ValidateStatement(stmt, 0); err != nil {
			return fmt.Errorf("invalid DDL statement %q: %w", firstLine(stmt), err)
		}
	}

	names := make([]string, 0, len(parameterized))
	for name := range parameterized {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ValidateStatement(parameterized[name], insertArity[name]); err != nil {
			return fmt.Errorf("invalid %s statement: %w", name, err)
		}
	}
	return nil
}

// CountPlaceholders returns the number of distinct $N placeholders outside string
// literals and quoted identifiers.
func CountPlaceholders(sqlQuery string) int {
	seen := make(map[int]struct{})
	forEachOutsideStrings(sqlQuery, func(i int, char rune) {
		if char != '$' {
			return
		}
		j := i + 1
		for j < len(sqlQuery) && sqlQuery[j] >= '0' && sqlQuery[j] <= '9' {
			j++
		}
		if j == i+1 {
			return
		}
		if n, err := strconv.Atoi(sqlQuery[i+1 : j]); err == nil {
			seen[n] = struct{}{}
		}
	})
	return len(seen)
}

// hasSemicolonOutsideStrings returns true if the SQL contains any semicolon
// outside of string literals.
func hasSemicolonOutsideStrings(sqlQuery string) bool {
	found := false
	forEachOutsideStrings(sqlQuery, func(_ int, char rune) {
		if char == ';' {
			found = true
		}
	})
	return found
}

// forEachOutsideStrings calls fn for every rune that is not inside a single-quoted
// literal or a double-quoted identifier.
func forEachOutsideStrings(sqlQuery string, fn func(i int, char rune)) {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)

	state := stateNormal
	prevChar := rune(0)

	for i, char := range sqlQuery {
		switch state {
		case stateNormal:
			switch char {
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			default:
				fn(i, char)
			}
		case stateSingleQuote:
			// A doubled quote ('') exits and re-enters, which keeps us in the string.
			if char == '\'' && prevChar != '\\' {
				state = stateNormal
			}
		case stateDoubleQuote:
			if char == '"' && prevChar != '\\' {
				state = stateNormal
			}
		}
		prevChar = char
	}
}

// stripTrailingSemicolon removes a trailing semicolon and any whitespace after it.
func stripTrailingSemicolon(sqlQuery string) string {
	sqlQuery = strings.TrimRight(sqlQuery, " \t\n\r")

	if strings.HasSuffix(sqlQuery, ";") {
		sqlQuery = strings.TrimSuffix(sqlQuery, ";")
		sqlQuery = strings.TrimRight(sqlQuery, " \t\n\r")
	}

	return sqlQuery
}

func firstLine(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
