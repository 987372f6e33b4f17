package humane_test

import (
	"errors"
	"fmt"
	"strings"

	"humane-errors/pkg/humane"
)

func Example() {
	loc := humane.Location{Member: "loadConfig", File: "/src/app/config.go", Line: 42}

	readErr := humane.AttachAt(errors.New("open app.yaml: permission denied"), loc,
		"The configuration file could not be read.",
		"Check the permissions on app.yaml.",
		"Run the command from the project directory.")
	err := fmt.Errorf("start: %w", readErr)

	for c := range humane.Contexts(err) {
		fmt.Println(c.FailureMode())
	}
	for _, s := range humane.Suggestions(err) {
		fmt.Println("-", s)
	}

	report := humane.String(err)
	heading, _, _ := strings.Cut(report, "\n")
	fmt.Println(heading)
	fmt.Println(strings.Count(report, "This was caused by:"))
	// Output:
	// The configuration file could not be read.
	// - Check the permissions on app.yaml.
	// - Run the command from the project directory.
	// *fmt.wrapError: start: open app.yaml: permission denied
	// 1
}
