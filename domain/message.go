// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable and never stored server-side.
package domain

import (
	"math/rand/v2"
	"time"
)

// Message represents an immutable chat event, routed once and forgotten.
// Timestamp is the sender-provided ISO string, kept as-is so clients can
// sort their local view; the server never reorders messages.
type Message struct {
	ID             string
	SenderID       string
	SenderUsername string
	RecipientID    string // empty for group messages
	Text           string
	Timestamp      string
}

// Direct reports whether the message targets a single recipient session.
func (m Message) Direct() bool {
	return m.RecipientID != ""
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewMessageID mints an identifier unique across the process lifetime.
// The timestamp prefix keeps ids roughly ordered; the random base36 suffix
// avoids collisions between concurrent sends in the same nanosecond.
func NewMessageID(at time.Time) string {
	suffix := make([]byte, 7)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return at.UTC().Format(time.RFC3339Nano) + string(suffix)
}
