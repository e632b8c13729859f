package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tapedeck/internal/playback"
	"github.com/llehouerou/tapedeck/internal/player"
	"github.com/llehouerou/tapedeck/internal/playlist"
	"github.com/llehouerou/tapedeck/internal/playlists"
	"github.com/llehouerou/tapedeck/internal/state"
	"github.com/llehouerou/tapedeck/internal/terminal"
)

// fakeTerminal accepts raw mode, records output and never yields a key.
type fakeTerminal struct {
	mu      sync.Mutex
	out     bytes.Buffer
	release chan struct{}
}

func (f *fakeTerminal) EnableRawMode() error  { return nil }
func (f *fakeTerminal) DisableRawMode() error { return nil }
func (f *fakeTerminal) Writer() io.Writer     { return f }

func (f *fakeTerminal) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Write(p)
}

func (f *fakeTerminal) ReadKey() (terminal.Key, error) {
	<-f.release
	return "", io.EOF
}

func (f *fakeTerminal) Output() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.String()
}

type harness struct {
	app        *app
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	engine     *player.Mock
	engineErr  error
	engines    int
	history    *state.Mock
	term       *fakeTerminal
	configPath string
	logPath    string
}

func newHarness(t *testing.T, configTOML string) *harness {
	t.Helper()
	h := &harness{
		engine:  player.NewMock(),
		history: state.NewMock(),
		term:    &fakeTerminal{release: make(chan struct{})},
	}
	t.Cleanup(func() { close(h.term.release) })

	h.app = newApp(&h.stdout, &h.stderr)
	h.app.captureStderr = false
	h.app.newEngine = func(int, time.Duration) (player.Interface, error) {
		h.engines++
		if h.engineErr != nil {
			return nil, h.engineErr
		}
		return h.engine, nil
	}
	h.app.newTerminal = func() playback.Terminal { return h.term }
	h.app.openHistory = func(string) (state.Interface, error) { return h.history, nil }

	dir := t.TempDir()
	h.configPath = filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(h.configPath, []byte(configTOML), 0o600))
	h.logPath = filepath.Join(dir, "tapedeck.log")
	return h
}

func (h *harness) run(args ...string) error {
	defer func() { _ = h.app.close() }()
	cmd := newRootCmd(h.app)
	cmd.SetArgs(append([]string{"--config", h.configPath, "--log-file", h.logPath}, args...))
	return cmd.Execute()
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func writeWAV(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(4410), format))
}

func TestPlay_Directory(t *testing.T) {
	h := newHarness(t, "")
	dir := t.TempDir()
	touch(t, dir, "b.mp3", "a.mp3")

	require.NoError(t, h.run("play", dir))

	calls := h.engine.PlayCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, filepath.Join(dir, "a.mp3"), calls[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.mp3"), calls[1].Path)
	assert.True(t, h.engine.Closed())

	out := h.term.Output()
	assert.Contains(t, out, "Playing a.mp3")
	assert.Contains(t, out, "Playing b.mp3")
	assert.Len(t, h.history.Plays(), 2)
}

func TestPlay_VolumeOverride(t *testing.T) {
	h := newHarness(t, "")
	dir := t.TempDir()
	touch(t, dir, "a.mp3")

	require.NoError(t, h.run("play", dir, "--volume", "0.5"))

	calls := h.engine.PlayCalls()
	require.Len(t, calls, 1)
	assert.InDelta(t, 0.5, calls[0].Gain, 1e-9)
}

func TestPlay_Playlist(t *testing.T) {
	h := newHarness(t, "[history]\nenabled = false\n")
	path := filepath.Join(t.TempDir(), "mix.json")
	p := playlist.New()
	p.Config.Volume = 2
	require.NoError(t, p.Add(playlist.NewSong("/music/one.flac")))
	require.NoError(t, playlists.Save(p, path))

	require.NoError(t, h.run("play", "-p", path))

	calls := h.engine.PlayCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/music/one.flac", calls[0].Path)
	assert.InDelta(t, 2.0, calls[0].Gain, 1e-9)
	assert.Empty(t, h.history.Plays())
}

func TestPlay_EmptyDirectory(t *testing.T) {
	h := newHarness(t, "")

	err := h.run("play", t.TempDir())

	require.ErrorIs(t, err, playback.ErrEmptyPlaylist)
	assert.Equal(t, 0, h.engines)
}

func TestPlay_MissingPlaylist(t *testing.T) {
	h := newHarness(t, "")
	path := filepath.Join(t.TempDir(), "missing.json")

	err := h.run("play", "--playlist", path)

	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "Failed to load playlist '"+path+"'")
	assert.Equal(t, 0, h.engines)
}

func TestPlay_NegativeVolume(t *testing.T) {
	h := newHarness(t, "")
	dir := t.TempDir()
	touch(t, dir, "a.mp3")

	err := h.run("play", dir, "--volume", "-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestPlay_AudioSetupFailure(t *testing.T) {
	h := newHarness(t, "")
	h.engineErr = errors.New("no such device")
	dir := t.TempDir()
	touch(t, dir, "a.mp3")

	err := h.run("play", dir)

	require.ErrorIs(t, err, playback.ErrStreamSetup)
	assert.Contains(t, err.Error(), "no such device")
}

func TestPlay_InvalidKeyOverride(t *testing.T) {
	h := newHarness(t, "[keys]\ndance = [\"d\"]\n")
	dir := t.TempDir()
	touch(t, dir, "a.mp3")

	err := h.run("play", dir)

	require.Error(t, err)
	assert.Empty(t, h.engine.PlayCalls())
}

func TestPlay_RequiresOneArgument(t *testing.T) {
	h := newHarness(t, "")

	assert.Error(t, h.run("play"))
}

func TestEdit_CreatesPlaylist(t *testing.T) {
	h := newHarness(t, "")
	dir := t.TempDir()
	touch(t, dir, "b.mp3", "a.mp3")
	path := filepath.Join(t.TempDir(), "mix.json")

	require.NoError(t, h.run("edit", path, "--file", dir, "--volume", "0.5", "--random", "shuffle"))

	p, err := playlists.Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p.Config.Volume, 1e-9)
	assert.Equal(t, playlist.RandomShuffle, p.Config.Random)
	require.Equal(t, 2, p.Len())
	assert.Equal(t, filepath.Join(dir, "a.mp3"), p.Song(0).Path)
}

func TestEdit_KeepsUnchangedSettings(t *testing.T) {
	h := newHarness(t, "")
	path := filepath.Join(t.TempDir(), "mix.json")
	p := playlist.New()
	p.Config.Volume = 0.3
	p.Config.Random = playlist.RandomTrue
	require.NoError(t, playlists.Save(p, path))

	require.NoError(t, h.run("edit", path))

	loaded, err := playlists.Load(path)
	require.NoError(t, err)
	assert.Equal(t, p.Config, loaded.Config)
}

func TestEdit_ReportsDuplicates(t *testing.T) {
	h := newHarness(t, "")
	song := filepath.Join(t.TempDir(), "a.mp3")
	require.NoError(t, os.WriteFile(song, []byte("x"), 0o644))
	path := filepath.Join(t.TempDir(), "mix.json")

	require.NoError(t, h.run("edit", path, "--file", song))
	require.NoError(t, h.run("edit", path, "--file", song))

	assert.Contains(t, h.stderr.String(), "song already exists: "+song)
	p, err := playlists.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
}

func TestEdit_Validate(t *testing.T) {
	h := newHarness(t, "")
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "tone.wav"))
	touch(t, dir, "notes.txt")
	path := filepath.Join(t.TempDir(), "mix.json")

	require.NoError(t, h.run("edit", path, "--file", dir, "--validate"))

	p, err := playlists.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())
	assert.Equal(t, filepath.Join(dir, "tone.wav"), p.Song(0).Path)
	assert.Contains(t, h.stderr.String(), "Filtered invalid audio file: notes.txt")
}

func TestEdit_Errors(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
		want string
	}{
		{
			name: "corrupt playlist",
			args: func(t *testing.T) []string {
				path := filepath.Join(t.TempDir(), "mix.json")
				require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
				return []string{"edit", path}
			},
			want: "Failed to load playlist",
		},
		{
			name: "missing file to add",
			args: func(t *testing.T) []string {
				return []string{"edit", filepath.Join(t.TempDir(), "mix.json"), "--file", "/does/not/exist.mp3"}
			},
			want: "Failed to add song to playlist '/does/not/exist.mp3'",
		},
		{
			name: "unknown random mode",
			args: func(t *testing.T) []string {
				return []string{"edit", filepath.Join(t.TempDir(), "mix.json"), "--random", "sometimes"}
			},
			want: "invalid random mode",
		},
		{
			name: "negative volume",
			args: func(t *testing.T) []string {
				return []string{"edit", filepath.Join(t.TempDir(), "mix.json"), "--volume", "-2"}
			},
			want: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")

			err := h.run(tt.args(t)...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDisplay_WithHistory(t *testing.T) {
	h := newHarness(t, "")
	path := filepath.Join(t.TempDir(), "mix.json")
	p := playlist.New()
	require.NoError(t, p.Add(playlist.NewSong("/music/a.mp3")))
	require.NoError(t, p.Add(playlist.NewSong("/music/b.mp3")))
	p.Song(1).Config.Volume = 1.5
	require.NoError(t, playlists.Save(p, path))

	now := time.Now()
	require.NoError(t, h.history.RecordPlay("/music/a.mp3", now.Add(-72*time.Hour)))
	require.NoError(t, h.history.RecordPlay("/music/a.mp3", now.Add(-49*time.Hour)))

	require.NoError(t, h.run("display", path))

	out := ansi.Strip(h.stdout.String())
	assert.Contains(t, out, "Settings:")
	assert.Contains(t, out, "Volume: 100%; Random mode: off")
	assert.Contains(t, out, "a.mp3   100%  played 2 times, last 2 days ago")
	assert.Contains(t, out, "b.mp3   150%  never played")
}

func TestDisplay_WithoutHistory(t *testing.T) {
	h := newHarness(t, "[history]\nenabled = false\n")
	path := filepath.Join(t.TempDir(), "mix.json")
	p := playlist.New()
	require.NoError(t, p.Add(playlist.NewSong("/music/a.mp3")))
	require.NoError(t, playlists.Save(p, path))

	require.NoError(t, h.run("display", path))

	out := ansi.Strip(h.stdout.String())
	assert.Contains(t, out, "a.mp3   100%")
	assert.NotContains(t, out, "played")
}

func TestDisplay_HistoryFailureStillDisplays(t *testing.T) {
	h := newHarness(t, "")
	h.history.SetError(errors.New("database is locked"))
	path := filepath.Join(t.TempDir(), "mix.json")
	p := playlist.New()
	require.NoError(t, p.Add(playlist.NewSong("/music/a.mp3")))
	require.NoError(t, playlists.Save(p, path))

	require.NoError(t, h.run("display", path))

	assert.Contains(t, ansi.Strip(h.stdout.String()), "a.mp3")
}

func TestDisplay_MissingPlaylist(t *testing.T) {
	h := newHarness(t, "")

	err := h.run("display", filepath.Join(t.TempDir(), "missing.json"))

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderPlaylist_Empty(t *testing.T) {
	out := ansi.Strip(renderPlaylist(playlist.New(), nil))

	assert.Equal(t, "Settings:\n  Volume: 100%; Random mode: off\nSongs:\n  (empty)\n", out)
}

func TestPlaySummary(t *testing.T) {
	tests := []struct {
		name  string
		stats state.PlayStats
		want  string
	}{
		{"never", state.PlayStats{}, "never played"},
		{"once", state.PlayStats{Count: 1, LastPlayed: time.Now().Add(-3 * time.Hour)}, "played 1 time, last 3 hours ago"},
		{"many", state.PlayStats{Count: 1200, LastPlayed: time.Now().Add(-10 * time.Minute)}, "played 1,200 times, last 10 minutes ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := playSummary(tt.stats); got != tt.want {
				t.Errorf("playSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInvalidLogLevel(t *testing.T) {
	h := newHarness(t, "")

	err := h.run("display", "x.json", "--log-level", "loud")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
