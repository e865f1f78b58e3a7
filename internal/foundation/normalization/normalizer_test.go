package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFormat string

const (
	formatText reportFormat = "text"
	formatJSON reportFormat = "json"
	formatHTML reportFormat = "html"
)

func newFormatNormalizer() *Normalizer[reportFormat] {
	return NewNormalizer(map[string]reportFormat{
		"text": formatText,
		"json": formatJSON,
		"html": formatHTML,
	}, formatText)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newFormatNormalizer()

	tests := []struct {
		name     string
		input    string
		expected reportFormat
	}{
		{"exact match", "json", formatJSON},
		{"case insensitive", "HTML", formatHTML},
		{"with spaces", "  json  ", formatJSON},
		{"unknown falls back", "yaml", formatText},
		{"empty falls back", "", formatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_NormalizeWithError(t *testing.T) {
	n := newFormatNormalizer()

	got, err := n.NormalizeWithError(" Json")
	require.NoError(t, err)
	assert.Equal(t, formatJSON, got)

	got, err = n.NormalizeWithError("")
	require.NoError(t, err)
	assert.Equal(t, formatText, got)

	_, err = n.NormalizeWithError("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[html json text]")
}

func TestNormalizer_ValidKeysIsACopy(t *testing.T) {
	n := newFormatNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"

	assert.Equal(t, []string{"html", "json", "text"}, n.ValidKeys())
}
