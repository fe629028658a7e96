package replay

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for mode, want := range map[string]Replayer{
		"inject":    &Injector{},
		"file":      &FileWriter{},
		"stdout":    &Writer{},
		"clipboard": Clipboard{},
	} {
		t.Run(mode, func(t *testing.T) {
			r, err := New(mode, "/tmp/x")
			require.NoError(t, err)
			assert.IsType(t, want, r)
		})
	}

	_, err := New("pipe", "")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selected")
	w := &FileWriter{Path: path}

	require.NoError(t, w.Replay("make -j4", true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "make -j4\nexec", string(data))

	require.NoError(t, w.Replay("ls -la", false))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ls -la", string(data))
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{Out: &buf}

	require.NoError(t, w.Replay("echo šampion", false))
	assert.Equal(t, "echo šampion", buf.String())

	buf.Reset()
	require.NoError(t, w.Replay("echo šampion", true))
	assert.Equal(t, "echo šampion\n", buf.String())
}

func TestInjectorRequiresTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()

	i := &Injector{fd: int(f.Fd())}
	assert.ErrorIs(t, i.Replay("ls", true), ErrNotTerminal)
}
