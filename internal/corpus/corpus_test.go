package corpus

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadStripsAndDropsEmpty(t *testing.T) {
	path := writeCorpus(t, []byte("  abc123 \n\n\t\nabc123\nPassword1!\n   \n"))

	passwords, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"abc123", "abc123", "Password1!"}, passwords)
}

func TestLoadIsIdempotent(t *testing.T) {
	path := writeCorpus(t, []byte("zeta\nalpha\nzeta\nmiddle\n"))

	first, err := Load(path)
	require.NoError(t, err)
	second, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoadLineEndings(t *testing.T) {
	path := writeCorpus(t, []byte("one\r\ntwo\rthree\nfour"))

	passwords, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three", "four"}, passwords)
}

func TestLoadDecodesLatin1(t *testing.T) {
	// 0xE9 is é in ISO-8859-1 and an invalid UTF-8 sequence on its own.
	path := writeCorpus(t, []byte{'c', 'a', 'f', 0xE9, '\n', 0xFF, 0x80, '\n'})

	passwords, err := Load(path)

	require.NoError(t, err)
	require.Len(t, passwords, 2)
	assert.Equal(t, "café", passwords[0])
	assert.Equal(t, "ÿ\u0080", passwords[1])
}

func TestLoadStripsLatin1Whitespace(t *testing.T) {
	// 0xA0 (no-break space) and 0x85 (next line) are whitespace once decoded.
	path := writeCorpus(t, []byte{0xA0, 'p', 'w', 0x85, '\n', 0xA0, '\n'})

	passwords, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"pw"}, passwords)
}

func TestReadStripsInformationSeparators(t *testing.T) {
	got, err := Read(strings.NewReader("\x1c\n\x1fabc\x1e\nok\x1d\n"))

	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "ok"}, got)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeCorpus(t, nil)

	passwords, err := Load(path)

	require.NoError(t, err)
	assert.Empty(t, passwords)
}

func TestLoadLongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	path := writeCorpus(t, []byte(long+"\nshort\n"))

	passwords, err := Load(path)

	require.NoError(t, err)
	require.Len(t, passwords, 2)
	assert.Len(t, passwords[0], len(long))
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	_, err := Load(path)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, path, ioErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(writeCorpus(t, []byte("a\n"))))

	err := Check(filepath.Join(t.TempDir(), "nope.txt"))
	var ioErr *IOError
	assert.ErrorAs(t, err, &ioErr)
}
