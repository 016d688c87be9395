// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/modstems/engine"
	"github.com/ik5/modstems/internal/audiotest"
)

var song = engine.SongMetadata{ChannelCount: 2, InstrumentCount: 2, DurationSeconds: 1}

type harness struct {
	fs   afero.Fs
	port *audiotest.FakeEngine
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join("mods", "a.mod"), []byte("module"), 0o644))

	return &harness{
		fs:   fs,
		port: &audiotest.FakeEngine{Meta: song, Frames: 800},
	}
}

func (h *harness) run(args ...string) (string, string, error) {
	cmd := NewRootCmdWith(Deps{
		Fs:        h.fs,
		NewEngine: func() (engine.Port, error) { return h.port, nil },
	})

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestHelp(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"root", []string{"--help"}, "renders tracker modules"},
		{"root commands", []string{"--help"}, "inspect"},
		{"render", []string{"render", "--help"}, "--vorbis-mode"},
		{"render panning", []string{"render", "--help"}, "only per-channel stems (--channels) use it"},
		{"inspect", []string{"inspect", "--help"}, "flac"},
		{"version", []string{"version", "--help"}, "--short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := newHarness(t).run(tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestVersion(t *testing.T) {
	out, _, err := newHarness(t).run("version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "vdev\n", out)

	out, _, err = newHarness(t).run("version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go Version:")
}

func TestRender(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("render", "-i", "mods", "-o", "out", "-s", "8000", "--channels", "--full", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Files:   1 (0 skipped)")
	assert.Contains(t, out, "Stems:   5 planned, 5 written, 0 silent, 0 failed")

	for _, name := range []string{"a.wav", "a_0001_chan_0000.wav", "a_0001_chan_0001.wav", "a_0002_chan_0000.wav", "a_0002_chan_0001.wav"} {
		ok, err := afero.Exists(h.fs, filepath.Join("out", name))
		require.NoError(t, err)
		assert.True(t, ok, name)
	}

	for _, c := range h.port.Calls() {
		assert.EqualValues(t, 8000, c.SampleRate)
		assert.False(t, c.PanningEnabled, "panning not given")
	}
}

func TestRender_FlagsReachEngine(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("render", "-i", "mods/a.mod", "-o", "out", "-s", "8000",
		"--sample-format", "float", "--stereo", "-p", "0.5", "--log-level", "error")
	require.NoError(t, err)

	calls := h.port.Calls()
	require.Len(t, calls, 2)
	for _, c := range calls {
		assert.EqualValues(t, 4, c.BytesPerSample)
		assert.True(t, c.StereoOutput)
		assert.True(t, c.PanningEnabled)
		assert.Equal(t, float32(0.5), c.Panning)
	}
}

func TestRender_EngineLockedByDefault(t *testing.T) {
	h := newHarness(t)
	h.port.Delay = 2 * time.Millisecond

	_, _, err := h.run("render", "-i", "mods", "-o", "out", "-s", "8000", "--channels", "--workers", "4", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, 1, h.port.MaxInFlight())
}

func TestRender_ConfigFile(t *testing.T) {
	h := newHarness(t)

	path := filepath.Join(t.TempDir(), "modstems.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: mods\noutput: stems\nsample_rate: 8000\nformat: aiff\n"), 0o644))

	_, _, err := h.run("render", "--config", path, "--log-level", "error")
	require.NoError(t, err)

	ok, err := afero.Exists(h.fs, filepath.Join("stems", "a_0001_chan_full.aiff"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRender_Progress(t *testing.T) {
	h := newHarness(t)

	_, errOut, err := h.run("render", "-i", "mods", "-o", "out", "-s", "8000", "--progress", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, errOut, "a.mod")
}

func TestRender_SetupErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing output", []string{"render", "-i", "mods"}},
		{"bad format", []string{"render", "-i", "mods", "-o", "out", "-f", "m4a"}},
		{"bad sample rate", []string{"render", "-i", "mods", "-o", "out", "-s", "1000"}},
		{"bad panning", []string{"render", "-i", "mods", "-o", "out", "-p", "3"}},
		{"infinite safety margin", []string{"render", "-i", "mods", "-o", "out", "--safety-margin", "Inf"}},
		{"missing input", []string{"render", "-i", "nowhere", "-o", "out"}},
		{"bad log level", []string{"render", "-i", "mods", "-o", "out", "--log-level", "loud"}},
		{"bad mp3 bitrate", []string{"render", "-i", "mods", "-o", "out", "--mp3-bitrate", "100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, _, err := h.run(tt.args...)
			require.Error(t, err)
			assert.Empty(t, h.port.Calls())
		})
	}
}

func TestRender_EngineUnavailable(t *testing.T) {
	h := newHarness(t)
	cmd := NewRootCmdWith(Deps{
		Fs:        h.fs,
		NewEngine: func() (engine.Port, error) { return nil, engine.ErrUnavailable },
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "-i", "mods", "-o", "out"})

	assert.ErrorIs(t, cmd.Execute(), engine.ErrUnavailable)
}

func TestInspect(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("render", "-i", "mods", "-o", "out", "-s", "8000", "--full", "-f", "wav", "--log-level", "error")
	require.NoError(t, err)

	out, _, err := h.run("inspect", filepath.Join("out", "a.wav"))
	require.NoError(t, err)
	assert.Contains(t, out, "FORMAT")
	assert.Contains(t, out, "wav")
	assert.Contains(t, out, "8000")
	assert.Contains(t, out, "100ms")

	_, _, err = h.run("inspect", filepath.Join("out", "a.wav"), "missing.wav")
	assert.ErrorIs(t, err, errInspect)
}
