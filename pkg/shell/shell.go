package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/afero"
)

const Prompt = "$ "

// Options wires a Shell to its collaborators. Config is required; the other
// zero values are replaced by the real operating system implementations.
type Options struct {
	Config     *Config
	FS         afero.Fs
	WorkingDir WorkingDir
	Executor   Executor
	Parser     Parser

	// LineReader overrides the default newline-delimited reader.
	LineReader LineReader

	// Color enables red highlighting in error messages.
	Color bool
}

type Shell struct {
	Out io.Writer
	Err io.Writer

	config   *Config
	fs       afero.Fs
	wd       WorkingDir
	resolver *Resolver
	executor Executor
	parser   Parser
	reader   LineReader
	accent   *color.Color
}

func New(reader io.Reader, out, errw io.Writer, opts Options) *Shell {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.WorkingDir == nil {
		opts.WorkingDir = OSWorkingDir{}
	}
	if opts.Executor == nil {
		opts.Executor = NewProcessExecutor(OutputInherit)
	}
	if opts.Parser == nil {
		opts.Parser = NewFieldsParser()
	}
	if opts.LineReader == nil {
		opts.LineReader = newBufioLineReader(reader, out)
	}

	accent := color.New(color.FgRed)
	if opts.Color {
		accent.EnableColor()
	} else {
		accent.DisableColor()
	}

	s := &Shell{
		Out:      out,
		Err:      errw,
		config:   opts.Config,
		fs:       opts.FS,
		wd:       opts.WorkingDir,
		resolver: NewResolver(opts.FS),
		executor: opts.Executor,
		parser:   opts.Parser,
		reader:   opts.LineReader,
		accent:   accent,
	}

	return s
}

// NewInteractive is like New but edits lines with readline. in is expected
// to be a terminal.
func NewInteractive(in io.Reader, out, errw io.Writer, opts Options) (*Shell, error) {
	lr, err := newReadlineLineReader(in, out, errw, true)
	if err != nil {
		return nil, fmt.Errorf("line editor: %w", err)
	}

	opts.LineReader = lr
	return New(in, out, errw, opts), nil
}

// Run reads and executes lines until input ends, which returns nil, or exit
// is called, which returns an *ExitError.
func (s *Shell) Run(ctx context.Context) error {
	defer s.reader.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.reader.ReadLine(Prompt)

		if errors.Is(err, ErrInterrupted) {
			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if err := s.Eval(ctx, line); err != nil {
			return err
		}
	}

}

// Eval runs a single input line. Only exit produces an error; every other
// failure is reported on Err.
func (s *Shell) Eval(ctx context.Context, line string) error {
	inv, name, err := ParseInvocation(line, s.parser, s.resolver, s.config)

	switch {
	case errors.Is(err, ErrEmptyLine):
		return nil
	case errors.Is(err, ErrCommandNotFound):
		fmt.Fprintf(s.Err, "%s: %s\n", name, s.highlight("command not found"))
		return nil
	case err != nil:
		fmt.Fprintln(s.Err, "parse error:", err)
		return nil
	}

	return s.Dispatch(ctx, inv)
}

// Dispatch executes a parsed invocation.
func (s *Shell) Dispatch(ctx context.Context, inv Invocation) error {
	if inv.Command.Kind == KindExternal {
		s.runExternal(ctx, inv)
		return nil
	}

	fn := s.builtin(inv.Command.Kind)
	if fn == nil {
		fmt.Fprintf(s.Err, "%s: unsupported command kind %v\n", inv.Command.Name, inv.Command.Kind)
		return nil
	}

	return fn(s, inv.Args)
}

func (s *Shell) runExternal(ctx context.Context, inv Invocation) {
	ioBinding := IOBindings{
		Stdin:  nil,
		Stdout: s.Out,
		Stderr: s.Err,
	}

	if _, err := s.executor.Execute(ctx, inv.Command, inv.Args, ioBinding); err != nil {
		fmt.Fprintf(s.Err, "%s: %v\n", inv.Command.Name, err)
	}
}

func (s *Shell) highlight(text string) string {
	return s.accent.Sprint(text)
}
