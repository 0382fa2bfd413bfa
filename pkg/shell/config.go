package shell

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	EnvPath = "PATH"
	EnvHome = "HOME"
)

var ErrMissingEnv = errors.New("environment variable not set")

// Config is built once at startup and never mutated afterwards.
type Config struct {
	// SearchPaths is consulted in order; the first directory holding a
	// matching executable wins. Empty and nonexistent entries are kept, but
	// the list itself must be present.
	SearchPaths []string `validate:"required"`

	// Home replaces "~" in cd targets. It may be empty, in which case only
	// cd is affected.
	Home string
}

// Validate the configuration for basic semantic errors.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, ", "))
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	paths := make([]string, len(c.SearchPaths))
	copy(paths, c.SearchPaths)

	return &Config{
		SearchPaths: paths,
		Home:        c.Home,
	}
}

// ParseConfig builds a Config from a colon separated directory list and a
// home directory. No existence checks are made.
func ParseConfig(pathList, home string) (*Config, error) {
	c := &Config{
		SearchPaths: strings.Split(pathList, string(os.PathListSeparator)),
		Home:        home,
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}

// LoadConfig reads PATH and HOME through lookup, normally os.LookupEnv.
func LoadConfig(lookup func(key string) (string, bool)) (*Config, error) {
	path, ok := lookup(EnvPath)
	if !ok {
		return nil, fmt.Errorf("%s: %w", EnvPath, ErrMissingEnv)
	}

	home, ok := lookup(EnvHome)
	if !ok {
		return nil, fmt.Errorf("%s: %w", EnvHome, ErrMissingEnv)
	}

	return ParseConfig(path, home)
}
