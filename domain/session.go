package domain

// JoinResult is the outcome of binding a session id to a username.
// On success Users carries the full current presence set (a set, not a
// sequence; order is irrelevant).
type JoinResult struct {
	Success          bool
	Users            []User
	CurrentSessionID string
	Username         string
	Error            string
}

// JoinChange describes what a join mutated inside the registry.
// NewJoin implies Changed; a rejoin with the same username flips neither,
// which is what makes join_chat idempotent.
type JoinChange struct {
	User    User
	Users   []User // presence snapshot after the mutation
	NewJoin bool   // the session was not previously joined
	Changed bool   // presence must be rebroadcast
}

// RegisterResult is the request/response payload of a registration attempt.
type RegisterResult struct {
	Success  bool
	Message  string
	Username string
}
