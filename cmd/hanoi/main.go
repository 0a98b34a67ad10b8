// Command hanoi streams the moves that solve a Towers of Hanoi puzzle, or
// serves them over HTTP with -server.
package main

import (
	"context"
	"os"

	"github.com/agbru/hanoi/internal/app"
	apperrors "github.com/agbru/hanoi/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
