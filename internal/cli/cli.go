// Package cli implements the terminal frontend: guided prompts, a live
// analysis feed, and the analyze/serve/config subcommands.
package cli
