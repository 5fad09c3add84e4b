// Package app wires application dependencies for the CLI.
//
// It builds the token store backend, session bus, request gateway, session
// manager and high-level services from Config, exposing them via the Wire
// struct for commands to use.
package app
