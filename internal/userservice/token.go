package userservice

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base32"
	"errors"
	"time"

	"github.com/lib/pq"
)

func hashToken(token string) []byte {
	hash := sha256.Sum256([]byte(token))
	return hash[:]
}

func newToken(userID int, ttl time.Duration, scope tokenScope) (*Token, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	token := &Token{
		Plain:  base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes),
		UserID: userID,
		Expiry: time.Now().Add(ttl),
		Scope:  scope,
	}

	token.Hash = hashToken(token.Plain)

	return token, nil
}

func (m *DBModel) insertToken(ctx context.Context, token *Token) error {
	query := `
		INSERT INTO tokens (hash, user_id, expiry, scope)
		VALUES ($1, $2, $3, $4)`

	_, err := m.db.ExecContext(ctx, query, token.Hash, token.UserID, token.Expiry, string(token.Scope))
	return err
}

func (m *DBModel) createToken(ctx context.Context, userID int, ttl time.Duration, scope tokenScope) (*Token, error) {
	token, err := newToken(userID, ttl, scope)
	if err != nil {
		return nil, err
	}

	err = m.insertToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return token, nil
}

// getUserByToken resolves a scoped token hash to its unexpired owner.
func (m *DBModel) getUserByToken(ctx context.Context, scope tokenScope, hash []byte) (*User, error) {
	var user User

	query := `
		SELECT u.id, u.username, u.name, u.email, u.activated, u.blog_ids, u.version
		FROM users u
		INNER JOIN tokens t ON u.id = t.user_id
		WHERE t.hash = $1 AND t.scope = $2 AND t.expiry > $3`

	err := m.db.QueryRowContext(ctx, query, hash, string(scope), time.Now()).Scan(&user.ID, &user.Username, &user.Name, &user.Email, &user.Activated, pq.Array(&user.BlogIDs), &user.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &user, nil
}

func (m *DBModel) deleteToken(tx *sql.Tx, ctx context.Context, userID int, scope tokenScope) error {
	query := `
		DELETE FROM tokens
		WHERE user_id = $1 AND scope = $2`

	_, err := tx.ExecContext(ctx, query, userID, string(scope))
	return err
}

func (m *DBModel) createAuthToken(tx *sql.Tx, ctx context.Context, userID int) (*AuthToken, error) {
	accessToken, err := newToken(userID, AccessTokenTime, "")
	if err != nil {
		return nil, err
	}

	refreshToken, err := newToken(userID, RefreshTokenTime, "")
	if err != nil {
		return nil, err
	}

	authToken := &AuthToken{
		AccessTokenPlain:   accessToken.Plain,
		AccessTokenHash:    accessToken.Hash,
		RefreshTokenPlain:  refreshToken.Plain,
		RefreshTokenHash:   refreshToken.Hash,
		UserID:             userID,
		AccessTokenExpiry:  accessToken.Expiry,
		RefreshTokenExpiry: refreshToken.Expiry,
	}

	query := `
		INSERT INTO auth_tokens (access_token, refresh_token, user_id, access_token_expiry, refresh_token_expiry)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = tx.ExecContext(ctx, query, authToken.AccessTokenHash, authToken.RefreshTokenHash, authToken.UserID, authToken.AccessTokenExpiry, authToken.RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}

	return authToken, nil
}

func (m *DBModel) getAuthToken(ctx context.Context, userID int) (*AuthToken, error) {
	var authToken AuthToken

	query := `
		SELECT access_token, refresh_token, user_id, access_token_expiry, refresh_token_expiry
		FROM auth_tokens
		WHERE user_id = $1`

	err := m.db.QueryRowContext(ctx, query, userID).Scan(&authToken.AccessTokenHash, &authToken.RefreshTokenHash, &authToken.UserID, &authToken.AccessTokenExpiry, &authToken.RefreshTokenExpiry)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, err
		}
	}

	return &authToken, nil
}

func (m *DBModel) deleteAuthToken(tx *sql.Tx, ctx context.Context, userID int) error {
	query := `
		DELETE FROM auth_tokens
		WHERE user_id = $1`

	_, err := tx.ExecContext(ctx, query, userID)
	return err
}

// getUserByAccessToken resolves an unexpired access token hash to the full
// user record, owned blog ids included.
func (m *DBModel) getUserByAccessToken(ctx context.Context, hash []byte) (*User, error) {
	var u User

	query := `
		SELECT u.id, u.username, u.name, u.email, u.activated, u.blog_ids, u.version
		FROM users u
		INNER JOIN auth_tokens t ON u.id = t.user_id
		WHERE t.access_token = $1 AND t.access_token_expiry > $2`

	err := m.db.QueryRowContext(ctx, query, hash, time.Now()).Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Activated, pq.Array(&u.BlogIDs), &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}
