// Package junitmerge provides public constants and a small API for tools
// that merge JUnit XML reports without shelling out to the CLI.
package junitmerge

// Exit codes returned by the junitmerge CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (missing input, malformed report, write failure).
	ExitFailure = 1

	// ExitConfigError indicates a configuration or usage error.
	ExitConfigError = 2
)
