package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "  Penguin,   1999 \n", expected: "Penguin, 1999"},
		{in: "already clean", expected: "already clean"},
		{in: "\tAvailable\n", expected: "Available"},
		{in: "", expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, Clean(test.in))
	}
}

func TestEqualsFold(t *testing.T) {
	require.True(t, EqualsFold("AVAILABLE ", "available"))
	require.True(t, EqualsFold(" Available", "AVAILABLE"))
	require.False(t, EqualsFold("On Loan", "available"))
}
