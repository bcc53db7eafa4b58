package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	frames := [][]float64{
		{0, 10, 20},
		{5, 160, 80.5},
	}
	id, err := st.Save(CaptureMetadata{Track: "song.wav", FFTSize: 128, Height: 160, FPS: 60}, frames)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	meta, err := st.Load(id)
	require.NoError(t, err)
	assert.Equal(t, "song.wav", meta.Track)
	assert.Equal(t, 2, meta.Frames)
	assert.Equal(t, 3, meta.Bars)
	assert.Equal(t, 160.0, meta.Peak)
	assert.False(t, meta.Timestamp.IsZero())

	got, err := st.LoadFrames(id)
	require.NoError(t, err)
	assert.Equal(t, frames, got)
}

func TestStoreSave_Empty(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Save(CaptureMetadata{}, nil)
	assert.ErrorIs(t, err, ErrEmptyCapture)
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	caps, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, caps)

	first, err := st.Save(CaptureMetadata{Track: "a.wav"}, [][]float64{{1}})
	require.NoError(t, err)
	second, err := st.Save(CaptureMetadata{Track: "b.wav"}, [][]float64{{2}})
	require.NoError(t, err)

	// junk that List must skip
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "not-a-capture"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644))

	caps, err = st.List()
	require.NoError(t, err)
	require.Len(t, caps, 2)

	ids := []string{caps[0].ID, caps[1].ID}
	assert.ElementsMatch(t, []string{first, second}, ids)
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	caps, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, caps)
}

func TestStoreLoad_Missing(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("cap_missing")
	assert.Error(t, err)
	_, err = st.LoadFrames("cap_missing")
	assert.Error(t, err)
}
