//go:generate go run go.uber.org/mock/mockgen -source=credential.go -destination=../mocks/mock_credential_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/namismyname/SocketTalk/auth"
	"github.com/namismyname/SocketTalk/errors"
)

type ICredentialRepository interface {
	Register(username, secret string) (Credential, error)
	Lookup(username string) (Credential, error)
}

// Credential is the stored record for one registered username.
// Keyed case-insensitively; Username keeps the original case the user typed.
// The secret is kept as given, without hashing. That mirrors the observed
// behavior and is tracked as an open issue, not a pattern to extend.
type Credential struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type CredentialRepository struct {
	db *badger.DB
}

// NewCredentialRepository wraps a Badger instance opened in-memory: the
// credential set lives exactly as long as the process, a restart discards
// every registered user.
func NewCredentialRepository(db *badger.DB) ICredentialRepository {
	return &CredentialRepository{db: db}
}

func credentialKey(username string) []byte {
	return []byte("credential:" + strings.ToLower(strings.TrimSpace(username)))
}

// Register inserts a credential for a username not yet taken.
// The existence check and the insert run inside one update transaction, so
// two concurrent registrations cannot both claim the same key.
// Nothing is written when the attempt fails.
func (r *CredentialRepository) Register(username, secret string) (Credential, error) {
	if err := auth.ValidateCredentials(username, secret); err != nil {
		return Credential{}, err
	}

	cred := Credential{
		Username: strings.TrimSpace(username),
		Secret:   secret,
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return Credential{}, fmt.Errorf("marshal failed: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		key := credentialKey(username)
		switch _, err := txn.Get(key); {
		case err == nil:
			return errors.ErrUsernameTaken
		case !stderrors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return Credential{}, err
	}

	return cred, nil
}

// Lookup retrieves a credential by case-insensitive username.
func (r *CredentialRepository) Lookup(username string) (Credential, error) {
	var cred Credential

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(credentialKey(username))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cred)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return Credential{}, errors.ErrUserNotFound
	}
	if err != nil {
		return Credential{}, err
	}

	return cred, nil
}
