// Package cli is the interactive alumnet terminal client.
//
// It wires configuration, the local state database, the API client, the
// session manager and the router, then runs a small REPL. Commands are
// navigations: "alumni" opens the directory, "jobs" the job board, and so
// on. Every navigation goes through the router, so protected screens bounce
// to the login form until a session exists, and forms that succeed move on
// to the next screen the same way.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
