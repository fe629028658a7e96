// Package replay hands the selected command back to the shell.
package replay

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/NeverVane/hsb/pkg/history"
)

var (
	// ErrNotTerminal is returned by the injector when stdin is not a tty.
	ErrNotTerminal = errors.New("standard input is not a terminal")
	// ErrUnknownMode is returned by New for an unsupported output mode.
	ErrUnknownMode = errors.New("unknown output mode")
)

// Replayer delivers a chosen command. When execute is set the shell should
// run it instead of only placing it on the command line.
type Replayer interface {
	Replay(command string, execute bool) error
}

// New returns the replayer for an output mode: inject, file, stdout or
// clipboard. path is only used by the file mode.
func New(mode, path string) (Replayer, error) {
	switch mode {
	case "inject":
		return &Injector{fd: int(os.Stdin.Fd())}, nil
	case "file":
		return &FileWriter{Path: path}, nil
	case "stdout":
		return &Writer{Out: os.Stdout}, nil
	case "clipboard":
		return Clipboard{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownMode, "%q", mode)
	}
}

// Injector pushes the command into the terminal's input queue, so it shows
// up on the prompt as if typed.
type Injector struct {
	fd int
}

// Replay implements Replayer.
func (i *Injector) Replay(command string, execute bool) error {
	if !term.IsTerminal(i.fd) {
		return ErrNotTerminal
	}
	if execute {
		command += "\n"
	}
	for _, b := range []byte(command) {
		if err := unix.IoctlSetPointerInt(i.fd, unix.TIOCSTI, int(b)); err != nil {
			return errors.Wrap(err, "failed to push input to terminal")
		}
	}
	return nil
}

// FileWriter leaves the command in a file for a shell widget to pick up.
// The second line is "exec" when the command should run.
type FileWriter struct {
	Path string
}

// Replay implements Replayer.
func (f *FileWriter) Replay(command string, execute bool) error {
	content := command
	if execute {
		content += "\nexec"
	}
	if err := history.WriteFileAtomic(f.Path, []byte(content), 0o600); err != nil {
		return errors.Wrap(err, "failed to write selected command")
	}
	return nil
}

// Writer prints the command, followed by a newline when it should run.
type Writer struct {
	Out io.Writer
}

// Replay implements Replayer.
func (w *Writer) Replay(command string, execute bool) error {
	if execute {
		command += "\n"
	}
	_, err := fmt.Fprint(w.Out, command)
	return err
}

// Clipboard copies the command to the system clipboard. Execution is not
// possible from there, so execute is ignored.
type Clipboard struct{}

// Replay implements Replayer.
func (Clipboard) Replay(command string, _ bool) error {
	if err := clipboard.WriteAll(command); err != nil {
		return errors.Wrap(err, "failed to copy to clipboard")
	}
	return nil
}
