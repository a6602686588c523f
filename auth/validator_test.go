package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/namismyname/SocketTalk/errors"
)

func TestValidateCredentials(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{name: "both present", username: "alice", password: "s3cret"},
		{name: "surrounding whitespace is fine", username: "  alice  ", password: " s3cret "},
		{name: "empty username", username: "", password: "s3cret", wantErr: true},
		{name: "empty password", username: "alice", password: "", wantErr: true},
		{name: "whitespace only username", username: "   ", password: "s3cret", wantErr: true},
		{name: "whitespace only password", username: "alice", password: "\t\n", wantErr: true},
		{name: "both empty", username: "", password: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCredentials(tc.username, tc.password)
			if tc.wantErr {
				require.ErrorIs(t, err, errors.ErrEmptyCredentials)
				return
			}
			require.NoError(t, err)
		})
	}
}
