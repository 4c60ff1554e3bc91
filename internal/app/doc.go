// Package app contains the core application logic behind the command line:
// loading office files, validating and compiling them, editing them, and
// rewriting them in canonical form. It is decoupled from any specific entrypoint like a CLI.
package app
