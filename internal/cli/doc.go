// Package cli parses the command-line surface into a validated command
// description. It owns flag definitions, usage text and exit codes; the app
// package owns what the commands actually do.
package cli
