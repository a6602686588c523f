package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMessageID_Shape(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)

	id := NewMessageID(at)

	prefix := at.Format(time.RFC3339Nano)
	req.True(strings.HasPrefix(id, prefix))

	suffix := strings.TrimPrefix(id, prefix)
	req.Len(suffix, 7)
	for _, r := range suffix {
		req.Contains(idAlphabet, string(r))
	}
}

func TestNewMessageID_Unique_Within_Same_Instant(t *testing.T) {
	req := require.New(t)
	at := time.Now()

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewMessageID(at)
		_, dup := seen[id]
		req.False(dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestMessage_Direct(t *testing.T) {
	req := require.New(t)

	req.False(Message{Text: "hi all"}.Direct())
	req.True(Message{Text: "hi you", RecipientID: "session-1"}.Direct())
}
