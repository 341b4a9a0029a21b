package servicemap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# known library services",
		"",
		"islington, prism.librarymanagementcloud.co.uk",
		"badline",
		"  BRENT , ENT.sirsidynix.net.uk  ",
	}, "\n")

	m, invalid := Parse(strings.NewReader(input))

	require.Equal(t, 1, invalid)
	require.Equal(t, Map{
		"islington": "prism.librarymanagementcloud.co.uk",
		"brent":     "ent.sirsidynix.net.uk",
	}, m)
}

func TestParseSingleInvalid(t *testing.T) {
	input := "islington, prism.librarymanagementcloud.co.uk\nbadline\n"
	m, invalid := Parse(strings.NewReader(input))
	require.Len(t, m, 1)
	require.Equal(t, 1, invalid)
}

func TestLookup(t *testing.T) {
	m := Map{"islington": "prism.librarymanagementcloud.co.uk"}

	id, ok := m.Lookup(" Islington ")
	require.True(t, ok)
	require.Equal(t, "prism.librarymanagementcloud.co.uk", id)

	_, ok = m.Lookup("atlantis")
	require.False(t, ok)
}

func TestAppendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backends.conf")
	err := os.WriteFile(path, []byte("islington, prism.librarymanagementcloud.co.uk\n"), 0644)
	require.NoError(t, err)

	err = Append(path, "Brent", "ENT.sirsidynix.net.uk")
	require.NoError(t, err)

	m, invalid, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0, invalid)
	require.Equal(t, "ent.sirsidynix.net.uk", m["brent"])
	require.Len(t, m, 2)
}
