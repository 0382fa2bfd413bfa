package shell

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyLine       = errors.New("empty line")
	ErrCommandNotFound = errors.New("command not found")
)

// Parser splits a raw input line into tokens.
type Parser interface {
	Parse(line string) ([]string, error)
}

// FieldsParser splits on runs of whitespace. There is no quoting or
// escaping: every whitespace rune separates tokens.
type FieldsParser struct{}

func NewFieldsParser() *FieldsParser {
	return &FieldsParser{}
}

func (p *FieldsParser) Parse(line string) ([]string, error) {
	fields := strings.Fields(line)

	args := make([]string, 0, len(fields))
	for _, field := range fields {
		args = append(args, strings.TrimSpace(field))
	}

	return args, nil
}

// Invocation is a resolved command plus its arguments. Args is never nil.
type Invocation struct {
	Command Command
	Args    []string
}

// ParseInvocation tokenizes line and resolves the first token. It returns
// ErrEmptyLine for blank input and ErrCommandNotFound, together with the
// offending token, when the command does not resolve.
func ParseInvocation(line string, parser Parser, resolver *Resolver, cfg *Config) (Invocation, string, error) {
	fields, err := parser.Parse(line)
	if err != nil {
		return Invocation{}, "", err
	}

	if len(fields) == 0 {
		return Invocation{}, "", ErrEmptyLine
	}

	name := fields[0]
	args := []string{}
	if len(fields) > 1 {
		args = fields[1:]
	}

	cmd, ok := resolver.Resolve(name, cfg)
	if !ok {
		return Invocation{}, name, fmt.Errorf("%s: %w", name, ErrCommandNotFound)
	}

	return Invocation{Command: cmd, Args: args}, name, nil
}
