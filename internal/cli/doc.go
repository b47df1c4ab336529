// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates CLI flags and the configuration file into an Invocation, and
// runs it against the scene packages.
package cli
