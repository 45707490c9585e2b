package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDShapeAndUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NewID()
		require.True(t, ValidFormat(id), "bad id %q", id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %q", id)
		seen[id] = struct{}{}
	}
}

func TestValidFormatRejectsMalformedIDs(t *testing.T) {
	cases := []string{
		"",
		"not-a-uuid",
		"123e4567-e89b-12d3-a456-426614174000", // version 1
		"123e4567-e89b-42d3-c456-426614174000", // bad variant nibble
		"123E4567-E89B-42D3-A456-426614174000", // uppercase
		"123e4567e89b42d3a456426614174000",     // no dashes
		"123e4567-e89b-42d3-a456-42661417400",  // too short
	}
	for _, c := range cases {
		assert.False(t, ValidFormat(c), "accepted %q", c)
	}
}

func TestNewVariableSetID(t *testing.T) {
	id := NewVariableSetID(3)
	assert.True(t, strings.HasPrefix(id, "manual_set_3_"), "got %q", id)

	other := NewVariableSetID(4)
	assert.NotEqual(t, id, other)
}
