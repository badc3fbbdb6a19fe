// Package session owns the authenticated session of the terminal client.
//
// A Manager starts Unresolved. Bootstrap reads the persisted token, asks the
// API who it belongs to and settles on Anonymous or Authenticated; nothing
// else leaves Unresolved. Login and Logout then move between the two
// resolved states. A token that cannot be resolved is discarded, so a stale
// credential never survives a restart.
//
// State transitions are serialized. Readers (State, Identity, Token) never
// wait for a transition in flight; they see the last settled snapshot.
package session
