package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
)

// ExitError is returned by the exit builtin. The shell stops reading input
// and the caller is expected to terminate with Status.
type ExitError struct {
	Status int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Status)
}

// Builtin implements a command inside the shell process.
type Builtin func(s *Shell, args []string) error

func (s *Shell) builtin(kind Kind) Builtin {
	switch kind {
	case KindExit:
		return exitBuiltin
	case KindEcho:
		return echoBuiltin
	case KindType:
		return typeBuiltin
	case KindPwd:
		return pwdBuiltin
	case KindCd:
		return cdBuiltin
	}

	return nil
}

func exitBuiltin(s *Shell, args []string) error {
	if len(args) == 0 {
		return &ExitError{Status: 0}
	}

	status, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		fmt.Fprintf(s.Err, "%s: invalid status code\n", s.highlight(args[0]))
		return nil
	}

	return &ExitError{Status: int(status)}
}

func echoBuiltin(s *Shell, args []string) error {
	fmt.Fprintln(s.Out, strings.Join(args, " "))
	return nil
}

func typeBuiltin(s *Shell, args []string) error {

	if len(args) == 0 {
		fmt.Fprintf(s.Err, "%s: usage: type NAME\n", s.highlight("type"))
		return nil
	}

	name := args[0]

	cmd, ok := s.resolver.Resolve(name, s.config)
	switch {
	case !ok:
		fmt.Fprintln(s.Out, name+": not found")
	case cmd.Kind.IsBuiltin():
		fmt.Fprintln(s.Out, name, "is a shell builtin")
	default:
		fmt.Fprintln(s.Out, name, "is", cmd.Path)
	}

	return nil
}

func pwdBuiltin(s *Shell, args []string) error {
	dir, err := s.wd.Getwd()
	if err != nil {
		fmt.Fprintln(s.Err, "pwd: error finding directory:", err)
		return nil
	}

	fmt.Fprintln(s.Out, dir)
	return nil
}

func cdBuiltin(s *Shell, args []string) error {

	target := s.config.Home
	if len(args) > 0 {
		target = args[0]
	}

	// Plain substitution, wherever the tilde appears.
	display := strings.ReplaceAll(target, "~", s.config.Home)

	// An empty HOME leaves nothing to change into.
	if display == "" {
		fmt.Fprintf(s.Err, "cd: %s: No such file or directory\n", display)
		return nil
	}

	target = display
	if !filepath.IsAbs(target) {
		cwd, err := s.wd.Getwd()
		if err != nil {
			fmt.Fprintf(s.Err, "cd: %s: %v\n", display, err)
			return nil
		}
		target = filepath.Join(cwd, target)
	}

	info, err := s.fs.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(s.Err, "cd: %s: No such file or directory\n", s.highlight(display))
		return nil
	}

	if err != nil {
		fmt.Fprintf(s.Err, "cd: %s: %v\n", display, err)
		return nil
	}

	if !info.IsDir() {
		fmt.Fprintf(s.Err, "cd: %s: Not a directory\n", display)
		return nil
	}

	if err := s.wd.Chdir(target); err != nil {
		fmt.Fprintf(s.Err, "cd: %s: %v\n", display, err)
	}

	return nil

}
