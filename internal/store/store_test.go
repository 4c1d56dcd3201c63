package store

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/unicode"
)

func TestLoadMissingFile(t *testing.T) {
	st := New(t.TempDir())

	var v any
	err := st.Load("jobs", &v)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadEncodings(t *testing.T) {
	// Aynı içerik dört farklı encoding ile yazıldığında birebir aynı çözülmeli
	content := `{"name": "Çam Yeşili", "code": "#2E5A3C"}`

	utf16Bytes, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(content))
	require.NoError(t, err)

	cases := map[string][]byte{
		"utf8.json":    []byte(content),
		"utf8sig.json": append([]byte{0xEF, 0xBB, 0xBF}, []byte(content)...),
		"utf16.json":   utf16Bytes,
	}

	dir := t.TempDir()
	st := New(dir)

	var want map[string]any
	require.NoError(t, os.WriteFile(filepath.Join(dir, "utf8.json"), cases["utf8.json"], 0o644))
	require.NoError(t, st.Load("utf8", &want))

	for name, raw := range cases {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), raw, 0o644))

		var got map[string]any
		require.NoError(t, st.Load(strings.TrimSuffix(name, ".json"), &got), name)
		assert.Equal(t, want, got, name)
	}
}

func TestLoadLatin1(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	// "Depo: Gül" latin-1'de — ü tek bayt 0xFC, geçerli UTF-8 değil
	raw := append([]byte(`{"warehouse": "G`), 0xFC)
	raw = append(raw, []byte(`l"}`)...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.json"), raw, 0o644))

	var got map[string]any
	require.NoError(t, st.Load("items", &got))
	assert.Equal(t, "Gül", got["warehouse"])
}

func TestLoadUndecodable(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("bu json değil"), 0o644))

	var got any
	err := st.Load("broken", &got)
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestSavePreservesTurkishCharacters(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	require.NoError(t, st.Save("colors", []map[string]any{{"name": "Çam Yeşili"}}))

	raw, err := os.ReadFile(filepath.Join(dir, "colors.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Çam Yeşili") // \u ile escape edilmemeli
	assert.Contains(t, string(raw), "  ")         // 2 boşluk girinti
}

func TestSaveCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "md.data")
	st := New(dir)

	require.NoError(t, st.Save("jobs", []any{}))
	_, err := os.Stat(filepath.Join(dir, "jobs.json"))
	assert.NoError(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())

	in := []map[string]any{{"id": "JOB-AB12CD34", "title": "Mutfak dolabı"}}
	require.NoError(t, st.Save("jobs", in))

	var out []map[string]any
	require.NoError(t, st.Load("jobs", &out))
	assert.Equal(t, in, out)
}

func TestGenerateID(t *testing.T) {
	re := regexp.MustCompile(`^JOB-[0-9A-F]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateID("JOB")
		assert.Regexp(t, re, id)
		seen[id] = true
	}
	// Rastgele uzaydan 100 üretimde çakışma beklenmez
	assert.Len(t, seen, 100)
}
