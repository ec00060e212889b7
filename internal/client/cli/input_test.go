package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	out := &bytes.Buffer{}
	reader := bufio.NewReader(strings.NewReader("patient-7\n"))

	got, err := GetSimpleText(reader, "Enter your patient id", out)
	require.NoError(t, err)

	assert.Equal(t, "patient-7", got)
	assert.Contains(t, out.String(), "Enter your patient id")
}

func TestGetSimpleText_PartialLineOnEOF(t *testing.T) {
	out := &bytes.Buffer{}
	reader := bufio.NewReader(strings.NewReader("patient-7"))

	got, err := GetSimpleText(reader, "Enter your patient id", out)
	require.NoError(t, err)
	assert.Equal(t, "patient-7", got)
}

func TestGetAPIKey_UsesTerminalReader(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	readPassword = func(fd int) ([]byte, error) {
		return []byte("secret-key"), nil
	}

	out := &bytes.Buffer{}
	key, err := GetAPIKey(out)
	require.NoError(t, err)

	assert.Equal(t, []byte("secret-key"), key)
	assert.Contains(t, out.String(), "Enter API key")
}

func TestFileBaseName(t *testing.T) {
	assert.Equal(t, "wound.jpg", fileBaseName("/home/alice/wound.jpg"))
	assert.Equal(t, "wound.jpg", fileBaseName(`C:\photos\wound.jpg`))
	assert.Equal(t, "wound.jpg", fileBaseName("wound.jpg"))
}
