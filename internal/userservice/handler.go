package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid authentication credentials")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache) *UserService {
	return &UserService{
		m:  newUserModel(db),
		mb: mb,
		c:  c,
	}
}

// CreateUser registers a new user account, issues an activation token and
// publishes a user.created event for the mail consumer.
func (s *UserService) CreateUser(ctx context.Context, username, name, email, password string) (*string, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
		Email:    email,
		Password: Password{Plain: password},
	}

	err := u.Password.set(u.Password.Plain)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	token, err := s.m.createToken(ctx, u.ID, ActivationTokenTime, TokenScopeActivate)
	if err != nil {
		return nil, err
	}

	data := struct {
		Email string
		Token string
	}{
		Email: u.Email,
		Token: token.Plain,
	}

	emailData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, emailData, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &token.Plain, nil
}

// ActivateUser marks the token's owner as activated and burns the token.
func (s *UserService) ActivateUser(ctx context.Context, token string) error {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return v.ValidationError()
	}

	hash := hashToken(token)

	user, err := s.m.getUserByToken(ctx, TokenScopeActivate, hash)
	if err != nil {
		return err
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = s.m.activateUserAccount(tx, ctx, user.ID, user.Version)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	err = s.m.deleteToken(tx, ctx, user.ID, TokenScopeActivate)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// LoginUser verifies the credentials and issues a fresh auth token pair,
// revoking any pair the user already holds. The store keeps only hashes, so
// a stored pair could never be handed back to the client in plaintext.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	dbToken, err := s.m.getAuthToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	if dbToken != nil {
		if err := s.m.deleteAuthToken(tx, ctx, user.ID); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		s.c.Delete(common.CacheKeyUserByAccessToken(dbToken.AccessTokenHash))
	}

	authToken, err := s.m.createAuthToken(tx, ctx, user.ID)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return authToken, nil
}

// GetUserByAccessToken resolves a bearer credential to the acting user. The
// caller is handed a fully loaded user record, not just an id.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	hash := hashToken(token)

	if cached, ok := s.c.Get(common.CacheKeyUserByAccessToken(hash)); ok {
		if user, ok := cached.(*User); ok {
			return user, nil
		}
	}

	user, err := s.m.getUserByAccessToken(ctx, hash)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyUserByAccessToken(hash), user, 5*time.Minute)

	return user, nil
}

func (s *UserService) LogoutUser(ctx context.Context, userID int) error {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	dbToken, err := s.m.getAuthToken(ctx, userID)
	if err != nil {
		return err
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = s.m.deleteAuthToken(tx, ctx, userID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if dbToken != nil {
		s.c.Delete(common.CacheKeyUserByAccessToken(dbToken.AccessTokenHash))
	}

	return nil
}

// GetUserByID reloads a user from the store.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByID(ctx, id)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

func (u *User) IsActivated() bool {
	return u.Activated
}
