package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/calfront/calfront/internal/source"
)

func TestDecode_PlainUTF8(t *testing.T) {
	text, enc, err := source.Decode([]byte("OBJECT Table 1 X {}"))
	require.NoError(t, err)
	assert.Equal(t, source.UTF8, enc)
	assert.Equal(t, "OBJECT Table 1 X {}", text)
}

func TestDecode_UTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("OBJECT Table 1 X {}")...)
	text, enc, err := source.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, source.UTF8BOM, enc)
	assert.Equal(t, "OBJECT Table 1 X {}", text)
}

func TestDecode_UTF16LE(t *testing.T) {
	want := "OBJECT Table 1 X {}"
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, _, err := transform.Bytes(encoder, []byte(want))
	require.NoError(t, err)

	text, enc, err := source.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, source.UTF16LE, enc)
	assert.Equal(t, want, text)
}

func TestLoad_RoundTripsThroughDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "item.txt")
	require.NoError(t, os.WriteFile(path, []byte("OBJECT Table 1 X {}"), 0o644))

	f, err := source.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "OBJECT Table 1 X {}", f.Text)
	assert.Equal(t, source.UTF8, f.Encoding)
}
