package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyConfidence(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		expected Confidence
	}{
		{name: "zero votes is low", count: 0, expected: ConfidenceLow},
		{name: "two votes is low", count: 2, expected: ConfidenceLow},
		{name: "four votes is still low", count: 4, expected: ConfidenceLow},
		{name: "five votes crosses into medium", count: 5, expected: ConfidenceMedium},
		{name: "fifteen votes is medium", count: 15, expected: ConfidenceMedium},
		{name: "nineteen votes is the medium ceiling", count: 19, expected: ConfidenceMedium},
		{name: "twenty votes crosses into high", count: 20, expected: ConfidenceHigh},
		{name: "eighty votes is high", count: 80, expected: ConfidenceHigh},
		{name: "ninety-nine votes is the high ceiling", count: 99, expected: ConfidenceHigh},
		{name: "one hundred votes is very high", count: 100, expected: ConfidenceVeryHigh},
		{name: "one hundred ten votes is very high", count: 110, expected: ConfidenceVeryHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyConfidence(tt.count))
		})
	}
}
