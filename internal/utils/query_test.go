package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueryList(t *testing.T) {
	q := map[string][]string{
		"type":   {"PA,CB"},
		"single": {"PA"},
		"multi":  {"PA", "CB"},
		"spaced": {" PA , CB "},
	}

	assert.Equal(t, []string{"PA", "CB"}, ParseQueryList(q, "type"))
	assert.Equal(t, []string{"PA"}, ParseQueryList(q, "single"))
	assert.Equal(t, []string{"PA", "CB"}, ParseQueryList(q, "multi"))
	assert.Equal(t, []string{"PA", "CB"}, ParseQueryList(q, "spaced"))
	assert.Nil(t, ParseQueryList(q, "missing"))
}
