// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates CLI flags into the application's configuration and renders
// results for the terminal. Besides validating, compiling and formatting,
// it renames and removes nodes in an office file.
package cli
