package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestLoad_MissingKeyReturnsFallback(t *testing.T) {
	s := newTestStore(t)

	got := Load(s, "absent", []string{"fallback"})
	assert.Equal(t, []string{"fallback"}, got)
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	s := newTestStore(t)

	type entry struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	Save(s, "entries", []entry{{Name: "a", Count: 1}, {Name: "b", Count: 2}})

	got := Load(s, "entries", []entry{})
	assert.Equal(t, []entry{{Name: "a", Count: 1}, {Name: "b", Count: 2}}, got)
}

func TestSave_OverwritesPreviousValue(t *testing.T) {
	s := newTestStore(t)

	Save(s, "pref", true)
	Save(s, "pref", false)

	assert.False(t, Load(s, "pref", true))
}

func TestLoad_CorruptValueReturnsFallback(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveRaw("broken", "{not json"))

	got := Load(s, "broken", []int{7})
	assert.Equal(t, []int{7}, got)
}

func TestLoad_ShapeMismatchReturnsFallback(t *testing.T) {
	s := newTestStore(t)

	// Valid JSON of the wrong shape behaves the same as corruption.
	require.NoError(t, s.SaveRaw("shape", `"just a string"`))

	got := Load(s, "shape", map[string]int{"x": 1})
	assert.Equal(t, map[string]int{"x": 1}, got)
}

func TestDelete_RemovesKey(t *testing.T) {
	s := newTestStore(t)

	Save(s, "gone", 42)
	s.Delete("gone")

	assert.Equal(t, -1, Load(s, "gone", -1))
}

func TestDelete_AbsentKeyIsNoop(t *testing.T) {
	s := newTestStore(t)

	s.Delete("never-existed")
}
