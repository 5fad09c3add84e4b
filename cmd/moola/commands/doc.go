// Package commands defines the moola CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login      Sign in and store the session tokens
//   - register   Create an account (three-step form)
//   - logout     Forget the stored session
//   - status     Show whether a session is active
//   - services   List payable services
//   - pay        Pay a service through the recipient/amount/confirm wizard
//   - airtime    Shortcut for "pay airtime"
//   - history    Show recent payment attempts
//
// # Implementation
//
// The root command loads configuration, builds the dependency graph and runs
// the one-time session check before any subcommand runs. A 401 from the API
// during any command clears the stored tokens; the command then reports that
// the session has ended.
package commands
