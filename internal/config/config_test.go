package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Grid.Gap != 20 || cfg.Grid.Size != 3 {
		t.Errorf("unexpected lattice spacing: %+v", cfg.Grid)
	}
	if cfg.Grid.Damping >= 1 {
		t.Error("damping should be below 1")
	}
	if cfg.Spectrum.Count != 40 {
		t.Errorf("expected 40 bars, got %d", cfg.Spectrum.Count)
	}
	if cfg.Cooldown() != 2500*time.Millisecond {
		t.Errorf("expected 2.5s cooldown, got %v", cfg.Cooldown())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashviz.yaml")
	data := []byte("grid:\n  gap: 30\naudio:\n  track: song.wav\napi:\n  base_url: http://hash.local\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.Grid.Gap)
	assert.Equal(t, 3.0, cfg.Grid.Size)
	assert.Equal(t, "song.wav", cfg.Audio.Track)
	assert.Equal(t, DefaultFFTSize, cfg.Audio.FFTSize)
	assert.Equal(t, "http://hash.local", cfg.API.BaseURL)
	assert.Equal(t, 40, cfg.Spectrum.Count)
}

func TestLoad_Rejects(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("grid:\n  damping: 1.5\n"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("grid: [\n"), 0644))
	_, err = Load(broken)
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Gesture.Threshold = 42

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("calm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Grid.Gap != 28 {
		t.Errorf("expected gap 28, got %f", cfg.Grid.Gap)
	}
	if cfg.Grid.Size != 3 {
		t.Errorf("unset fields should keep defaults, size=%f", cfg.Grid.Size)
	}

	landing := GetPreset("landing")
	if *landing != *DefaultConfig() {
		t.Error("landing preset should equal the defaults")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	assert.Equal(t, []string{"calm", "frantic", "landing"}, presets)

	for _, name := range presets {
		assert.NoError(t, GetPreset(name).Validate(), name)
	}
}

func TestSceneOptions(t *testing.T) {
	opts := GetPreset("frantic").SceneOptions()
	assert.Equal(t, 12.0, opts.Grid.Gap)
	assert.Equal(t, 30.0, opts.Threshold)
	assert.Equal(t, 2500*time.Millisecond, opts.Cooldown)
	assert.Equal(t, 40, opts.Layout.Count)
}
