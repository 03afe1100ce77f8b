package credentials

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/examhub/internal/client/repositories/securestore"
	"github.com/dmitrijs2005/examhub/internal/common"
	"github.com/dmitrijs2005/examhub/internal/cryptox"
	"github.com/dmitrijs2005/examhub/internal/dbx"
)

const (
	keyUserID       = "userId"
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keySalt         = "salt"
)

var ErrDecrypt = errors.New("stored credentials cannot be decrypted")

// SecureStore persists Credentials in SQLite, each field sealed with
// AES-GCM. The key is derived from a secret with argon2id and a salt that
// is generated on first Save and stored next to the items.
type SecureStore struct {
	db     *sql.DB
	secret []byte

	mu   sync.Mutex
	salt []byte
	key  []byte
}

func NewSecureStore(db *sql.DB, secret string) *SecureStore {
	return &SecureStore{db: db, secret: []byte(secret)}
}

func (s *SecureStore) Get(ctx context.Context) (*Credentials, error) {
	repo := securestore.NewSQLiteRepository(s.db)

	salt, err := repo.Get(ctx, keySalt)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		return nil, nil
	}

	key, err := s.deriveKey(salt.Value)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, 3)
	for _, k := range []string{keyUserID, keyAccessToken, keyRefreshToken} {
		item, err := repo.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, nil
		}
		plain, err := cryptox.Open(item.Value, item.Nonce, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDecrypt, k)
		}
		values[k] = string(plain)
	}

	c := &Credentials{
		UserID:       values[keyUserID],
		AccessToken:  values[keyAccessToken],
		RefreshToken: values[keyRefreshToken],
	}
	if !c.Complete() {
		return nil, nil
	}
	return c, nil
}

// Save seals and writes the three fields in one transaction.
func (s *SecureStore) Save(ctx context.Context, c Credentials) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := securestore.NewSQLiteRepository(tx)

		salt, err := repo.Get(ctx, keySalt)
		if err != nil {
			return err
		}
		if salt == nil {
			salt = &securestore.Item{Key: keySalt, Value: common.GenerateRandByteArray(cryptox.SaltSize)}
			if err := repo.Set(ctx, salt); err != nil {
				return err
			}
		}

		key, err := s.deriveKey(salt.Value)
		if err != nil {
			return err
		}

		fields := []struct{ key, value string }{
			{keyUserID, c.UserID},
			{keyAccessToken, c.AccessToken},
			{keyRefreshToken, c.RefreshToken},
		}
		for _, f := range fields {
			ct, nonce, err := cryptox.Seal([]byte(f.value), key)
			if err != nil {
				return fmt.Errorf("seal %s: %w", f.key, err)
			}
			if err := repo.Set(ctx, &securestore.Item{Key: f.key, Value: ct, Nonce: nonce}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear removes the session. The salt is kept so the derived key stays valid.
func (s *SecureStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := securestore.NewSQLiteRepository(tx)
		for _, k := range []string{keyUserID, keyAccessToken, keyRefreshToken} {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

// deriveKey caches the key for the last seen salt; argon2id is deliberately slow.
func (s *SecureStore) deriveKey(salt []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil && bytes.Equal(s.salt, salt) {
		return s.key, nil
	}
	key, err := cryptox.DeriveKey(s.secret, salt)
	if err != nil {
		return nil, err
	}
	s.salt = append([]byte(nil), salt...)
	s.key = key
	return key, nil
}
