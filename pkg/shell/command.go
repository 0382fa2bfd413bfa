package shell

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Kind tags a resolved command.
type Kind int

const (
	KindExit Kind = iota
	KindEcho
	KindType
	KindPwd
	KindCd
	KindExternal
)

var builtinNames = map[string]Kind{
	"exit": KindExit,
	"echo": KindEcho,
	"type": KindType,
	"pwd":  KindPwd,
	"cd":   KindCd,
}

func (k Kind) String() string {
	switch k {
	case KindExit:
		return "exit"
	case KindEcho:
		return "echo"
	case KindType:
		return "type"
	case KindPwd:
		return "pwd"
	case KindCd:
		return "cd"
	case KindExternal:
		return "external"
	}

	return "unknown"
}

// IsBuiltin reports whether the kind is implemented inside the shell.
func (k Kind) IsBuiltin() bool {
	return k != KindExternal
}

// Command is the result of resolving a command token. Path is only set for
// KindExternal.
type Command struct {
	Kind Kind
	Name string
	Path string
}

// Is compares commands by kind only.
func (c Command) Is(other Command) bool {
	return c.Kind == other.Kind
}

func (c Command) String() string {
	return c.Name
}

// Resolver classifies command tokens. It holds no state besides the
// filesystem it inspects, so repeated calls are deterministic.
type Resolver struct {
	fs afero.Fs
}

func NewResolver(fs afero.Fs) *Resolver {
	return &Resolver{fs: fs}
}

// Resolve returns the builtin named by token or the first executable called
// token found directly inside one of cfg.SearchPaths. Builtins always win.
func (r *Resolver) Resolve(token string, cfg *Config) (Command, bool) {
	if kind, ok := builtinNames[token]; ok {
		return Command{Kind: kind, Name: token}, true
	}

	if token == "" || strings.ContainsRune(token, filepath.Separator) {
		return Command{}, false
	}

	path, ok := r.Lookup(token, cfg.SearchPaths)
	if !ok {
		return Command{}, false
	}

	return Command{Kind: KindExternal, Name: token, Path: path}, true
}

// Lookup walks dirs in order and returns the first dir/name that is an
// executable, non-directory file.
func (r *Resolver) Lookup(name string, dirs []string) (string, bool) {

	for _, dir := range dirs {

		pathToCheck := filepath.Join(dir, name)

		if info, err := r.fs.Stat(pathToCheck); err == nil {
			if !info.IsDir() && info.Mode()&0111 != 0 {
				return pathToCheck, true
			}
		}
	}

	return "", false

}
