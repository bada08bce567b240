// Package app wires application dependencies for the CLI.
//
// It loads Config from the environment and an optional .env file, then
// builds the logger, storage backend, metrics, identity session and JSON
// handler, exposing them via the Wire struct for commands to use.
package app
