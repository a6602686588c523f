// Package domain contains core concepts of the chat system.
// This file defines the User entity bound to a live session.
// No runtime, network, or UI logic should be added here.
package domain

// User represents a joined session. It exists only while its session id is
// present in the connection registry; there is at most one User per session id.
type User struct {
	ID       string // session identifier
	Username string
}
