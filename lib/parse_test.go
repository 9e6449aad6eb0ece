package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *uint64
	}{
		{name: "whole amount", input: "499", expected: uint64Ptr(49900)},
		{name: "two decimals", input: "499.99", expected: uint64Ptr(49999)},
		{name: "one decimal", input: "499.5", expected: uint64Ptr(49950)},
		{name: "comma separator", input: "12,50", expected: uint64Ptr(1250)},
		{name: "zero is a valid price", input: "0", expected: uint64Ptr(0)},
		{name: "surrounding whitespace", input: " 10.00 ", expected: uint64Ptr(1000)},
		{name: "empty is absent", input: "", expected: nil},
		{name: "whitespace only is absent", input: "   ", expected: nil},
		{name: "non-numeric is absent", input: "abc", expected: nil},
		{name: "negative is absent", input: "-5", expected: nil},
		{name: "too many decimals is absent", input: "1.999", expected: nil},
		{name: "trailing dot is absent", input: "5.", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePriceToCents(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func TestParseOptionalDate(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		got, err := ParseOptionalDate(nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("blank input", func(t *testing.T) {
		blank := "  "
		got, err := ParseOptionalDate(&blank)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("valid date", func(t *testing.T) {
		input := "2026-12-31"
		got, err := ParseOptionalDate(&input)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("malformed date", func(t *testing.T) {
		input := "31-12-2026"
		got, err := ParseOptionalDate(&input)
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestNormalizeOptionalText(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, NormalizeOptionalText(nil))
	})

	t.Run("blank collapses to nil", func(t *testing.T) {
		blank := "   "
		assert.Nil(t, NormalizeOptionalText(&blank))
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		input := "  fresh produce  "
		got := NormalizeOptionalText(&input)
		require.NotNil(t, got)
		assert.Equal(t, "fresh produce", *got)
	})
}
