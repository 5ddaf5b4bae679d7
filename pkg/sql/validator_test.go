package sql

import (
	"errors"
	"testing"
)

func TestValidateAndNormalize(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expected     string
		placeholders int
	}{
		{
			name:     "drop statement with trailing semicolon",
			input:    "DROP TABLE IF EXISTS songs;",
			expected: "DROP TABLE IF EXISTS songs",
		},
		{
			name:     "leading and trailing whitespace",
			input:    "\n  SELECT 1;  \n",
			expected: "SELECT 1",
		},
		{
			name:         "positional placeholders",
			input:        "INSERT INTO t (a, b) VALUES ($1, $2);",
			expected:     "INSERT INTO t (a, b) VALUES ($1, $2)",
			placeholders: 2,
		},
		{
			name:         "repeated placeholder counted once",
			input:        "SELECT * FROM t WHERE a = $1 OR b = $1",
			expected:     "SELECT * FROM t WHERE a = $1 OR b = $1",
			placeholders: 1,
		},
		{
			name:     "dollar sign inside string literal",
			input:    "SELECT 'costs $5;' FROM t",
			expected: "SELECT 'costs $5;' FROM t",
		},
		{
			name:     "semicolon inside quoted identifier",
			input:    `SELECT * FROM "odd;name"`,
			expected: `SELECT * FROM "odd;name"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateAndNormalize(tt.input)
			if result.Error != nil {
				t.Fatalf("unexpected error: %v", result.Error)
			}
			if result.NormalizedSQL != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result.NormalizedSQL)
			}
			if result.Placeholders != tt.placeholders {
				t.Errorf("expected %d placeholders, got %d", tt.placeholders, result.Placeholders)
			}
		})
	}
}

func TestValidateAndNormalize_MultipleStatements(t *testing.T) {
	result := ValidateAndNormalize("DROP TABLE songs; DROP TABLE artists;")
	if !errors.Is(result.Error, ErrMultipleStatements) {
		t.Fatalf("expected ErrMultipleStatements, got %v", result.Error)
	}
}

func TestValidateStatement_ArityMismatch(t *testing.T) {
	err := ValidateStatement("INSERT INTO t (a, b) VALUES ($1, $2)", 3)
	if !errors.Is(err, ErrPlaceholderMismatch) {
		t.Fatalf("expected ErrPlaceholderMismatch, got %v", err)
	}
}

func TestValidateCatalog(t *testing.T) {
	if err := ValidateCatalog(); err != nil {
		t.Fatalf("catalog should validate: %v", err)
	}
}
