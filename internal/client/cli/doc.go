// Package cli provides the interactive bimod terminal client.
//
// It wires the session, the domain services and an interactive REPL whose
// pages mirror the platform's screens: sign in, register, dashboard, COE
// processor, SQL analysis and report consolidation. Every navigation goes
// through router.Guard, so protected pages are only reachable with a
// signed-in session.
//
// Typical flow: restore the session from the stored token, start a
// background connectivity watcher, then read commands until the user exits.
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
