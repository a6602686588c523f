package repositories

import (
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	apperrors "github.com/namismyname/SocketTalk/errors"
)

func newTestRepository(t *testing.T) ICredentialRepository {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCredentialRepository(db)
}

func TestCredentialRepository_Register_And_Lookup(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)

	// When a fresh username registers
	cred, err := repo.Register("Alice", "s3cret")
	req.NoError(err)
	req.Equal("Alice", cred.Username)

	// Then the stored credential keeps the original casing
	stored, err := repo.Lookup("Alice")
	req.NoError(err)
	req.Equal("Alice", stored.Username)
	req.Equal("s3cret", stored.Secret)
}

func TestCredentialRepository_Lookup_Is_Case_Insensitive(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)
	_, err := repo.Register("Alice", "s3cret")
	req.NoError(err)

	cred, err := repo.Lookup("aLiCe")

	req.NoError(err)
	req.Equal("Alice", cred.Username)
}

func TestCredentialRepository_Register_Rejects_Taken_Username(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)
	_, err := repo.Register("Alice", "s3cret")
	req.NoError(err)

	// When another registration collides on a case-folded key
	_, err = repo.Register("ALICE", "other")

	req.ErrorIs(err, apperrors.ErrUsernameTaken)

	// And the original credential is untouched
	cred, lookupErr := repo.Lookup("alice")
	req.NoError(lookupErr)
	req.Equal("s3cret", cred.Secret)
}

func TestCredentialRepository_Register_Rejects_Empty_Credentials(t *testing.T) {
	repo := newTestRepository(t)

	cases := []struct {
		name     string
		username string
		secret   string
	}{
		{name: "empty username", username: "", secret: "s3cret"},
		{name: "whitespace username", username: "   ", secret: "s3cret"},
		{name: "empty password", username: "alice", secret: ""},
		{name: "whitespace password", username: "alice", secret: "   "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.Register(tc.username, tc.secret)
			require.ErrorIs(t, err, apperrors.ErrEmptyCredentials)
		})
	}
}

func TestCredentialRepository_Register_Trims_Username(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)

	_, err := repo.Register("  Alice  ", "s3cret")
	req.NoError(err)

	cred, err := repo.Lookup("alice")
	req.NoError(err)
	req.Equal("Alice", cred.Username)
}

func TestCredentialRepository_Lookup_Unknown_User(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)

	_, err := repo.Lookup("nobody")

	req.ErrorIs(err, apperrors.ErrUserNotFound)
}
