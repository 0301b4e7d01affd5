package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDisplayName(t *testing.T) {
	cases := []struct {
		address string
		want    string
	}{
		{"jane.m.doe@example.com", "Jane Doe"},
		{"jane.doe@example.com", "Jane Doe"},
		{"jane@example.com", "Jane"},
		{"jane_doe@example.com", "Jane Doe"},
		{"jane-doe@example.com", "Jane Doe"},
		{"jane+retreat@example.com", "Jane Retreat"},
		{"j@example.com", "J"},
		{"@example.com", "Guest"},
		{"", "Guest"},
		{"...@example.com", "Guest"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveDisplayName(tc.address), "address=%q", tc.address)
	}
}
