package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	date := time.Date(2025, time.October, 4, 13, 37, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		transactionID int64
		format        string
		expected      string
	}{
		{
			name:          "date placeholders with padded sequence",
			transactionID: 42,
			format:        "INV-{YYYY}{MM}{DD}-{SEQ:6}",
			expected:      "INV-20251004-000042",
		},
		{
			name:          "short year",
			transactionID: 7,
			format:        "{YY}{MM}-{SEQ:4}",
			expected:      "2510-0007",
		},
		{
			name:          "id wider than the sequence is not truncated",
			transactionID: 1234567,
			format:        "R{SEQ:3}",
			expected:      "R1234567",
		},
		{
			name:          "literal text only around the sequence",
			transactionID: 5,
			format:        "{SEQ:1}",
			expected:      "5",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Generate(tc.transactionID, tc.format, date)

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestGenerateRejectsBadFormats(t *testing.T) {
	date := time.Date(2025, time.October, 4, 0, 0, 0, 0, time.UTC)

	_, err := Generate(1, "INV-{YYYY}", date)
	assert.Error(t, err)

	_, err = Generate(1, "{SEQ:3}-{SEQ:3}", date)
	assert.Error(t, err)

	_, err = Generate(1, "{SEQ:0}", date)
	assert.Error(t, err)
}
