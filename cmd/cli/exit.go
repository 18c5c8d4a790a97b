package main

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"

	"github.com/dojoctl/dojoctl/pkg/config"
	"github.com/dojoctl/dojoctl/pkg/defaults"
	"github.com/dojoctl/dojoctl/pkg/dojo"
	"github.com/dojoctl/dojoctl/pkg/importer"
	"github.com/dojoctl/dojoctl/pkg/ui"
)

// exitWithError prints a formatted error message and exits with the given
// code. Use this instead of ui.PrintError + os.Exit for consistent CLI
// error handling.
func exitWithError(code int, format string, args ...any) {
	ui.PrintError(fmt.Sprintf(format, args...))
	os.Exit(code)
}

// exitWithUsage prints an error message followed by a usage hint, then exits.
func exitWithUsage(msg, usage string) {
	ui.PrintError(msg)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:", usage)
	os.Exit(defaults.ExitUserError)
}

// fail maps an error to its exit code class and terminates the run.
func fail(err error) {
	code := defaults.ExitInternalError

	var apiErr *dojo.APIError
	var netErr net.Error
	var urlErr *url.Error
	switch {
	case errors.Is(err, importer.ErrValidation),
		errors.Is(err, config.ErrMissingRequired),
		errors.Is(err, config.ErrInvalidConfig):
		code = defaults.ExitUserError
	case errors.As(err, &apiErr), errors.As(err, &netErr), errors.As(err, &urlErr):
		code = defaults.ExitNetworkError
	}
	exitWithError(code, "%v", err)
}
