// Package session serializes access to per-user conversation state. Every
// transition and every eviction for one user runs under the same lock, so a
// message and the timeout sweep can never interleave on a session.
package session
