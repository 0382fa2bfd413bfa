package shell

import (
	"bufio"
	"errors"
	"io"

	"github.com/chzyer/readline"
)

// ErrInterrupted is returned by a LineReader when the user abandons the
// current line (Ctrl-C). The shell simply prompts again.
var ErrInterrupted = errors.New("interrupted")

// LineReader prints prompt and blocks until a full line is available.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

type flusher interface {
	Flush() error
}

type bufioLineReader struct {
	in  *bufio.Reader
	out io.Writer
}

func newBufioLineReader(in io.Reader, out io.Writer) *bufioLineReader {
	return &bufioLineReader{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (r *bufioLineReader) ReadLine(prompt string) (string, error) {
	if _, err := io.WriteString(r.out, prompt); err != nil {
		return "", err
	}

	// Prompts carry no newline, so buffered writers must be pushed out.
	if f, ok := r.out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return "", err
		}
	}

	line, err := r.in.ReadString('\n')

	// A final line without a trailing newline is still a line.
	if errors.Is(err, io.EOF) && line != "" {
		return line, nil
	}

	return line, err
}

func (r *bufioLineReader) Close() error {
	return nil
}

// readlineLineReader provides line editing for terminals. History is kept
// off so no state survives between lines.
type readlineLineReader struct {
	instance *readline.Instance
}

func newReadlineLineReader(in io.Reader, out, errw io.Writer, terminal bool) (*readlineLineReader, error) {
	instance, err := readline.NewEx(&readline.Config{
		Stdin:                  readline.NewCancelableStdin(in),
		Stdout:                 out,
		Stderr:                 errw,
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
		FuncIsTerminal: func() bool {
			return terminal
		},
	})
	if err != nil {
		return nil, err
	}

	return &readlineLineReader{instance: instance}, nil
}

func (r *readlineLineReader) ReadLine(prompt string) (string, error) {
	r.instance.SetPrompt(prompt)

	line, err := r.instance.Readline()
	return line, readlineError(err)
}

func readlineError(err error) error {
	if errors.Is(err, readline.ErrInterrupt) {
		return ErrInterrupted
	}
	return err
}

func (r *readlineLineReader) Close() error {
	return r.instance.Close()
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return readline.IsTerminal(int(fd))
}
