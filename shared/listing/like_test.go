package listing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	require.Equal(t, "%ana%", Contains("  Ana "))
	require.Equal(t, `%100\%%`, Contains("100%"))
	require.Equal(t, `%a\_b%`, Contains("a_b"))
	require.Equal(t, `%c:\\temp%`, Contains(`C:\temp`))
	require.Equal(t, "LOWER(states.name) LIKE ? ESCAPE '\\'", Like("states.name"))
}
