package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/Neev4n/minishell/internal/cli"
	"github.com/Neev4n/minishell/pkg/shell"
)

func main() {
	log.SetFlags(0)

	err := cli.Execute(context.Background())

	var exitErr *shell.ExitError
	var startupErr *cli.StartupError

	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		os.Exit(exitErr.Status)
	case errors.As(err, &startupErr):
		log.Fatal(startupErr.Err)
	default:
		log.Fatal(err)
	}

}
