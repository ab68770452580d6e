// Command prism browses installed applications and overrides their accent
// color.
package main

import (
	"fmt"
	"os"

	appErrors "prism/internal/errors"
)

func main() {
	cmd := newRootCmd(newCLIApp())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for bad input and 1 for everything else.
func exitCode(err error) int {
	switch appErrors.CodeOf(err) {
	case appErrors.CodeInvalidAccent, appErrors.CodeConfigurationError:
		return 2
	}
	return 1
}
