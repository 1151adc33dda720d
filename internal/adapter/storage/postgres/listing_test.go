package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	columns := map[string]string{
		"label":      "w.label",
		"created_at": "w.created_at",
	}

	tests := []struct {
		name     string
		ordering string
		want     string
	}{
		{"ascending", "label", "w.label ASC"},
		{"descending", "-label", "w.label DESC"},
		{"empty falls back", "", "w.created_at DESC"},
		{"unknown field falls back", "secret_column", "w.created_at DESC"},
		{"unknown descending falls back", "-secret_column", "w.created_at DESC"},
		{"bare dash falls back", "-", "w.created_at DESC"},
		{"injection attempt falls back", "label; DROP TABLE wallets", "w.created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderClause(tt.ordering, columns, "w.created_at DESC"))
		})
	}
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{"plain term", "savings", "%savings%"},
		{"percent escaped", "50%", `%50\%%`},
		{"underscore escaped", "a_b", `%a\_b%`},
		{"backslash escaped", `a\b`, `%a\\b%`},
		{"empty term matches all", "", "%%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, likePattern(tt.term))
		})
	}
}
