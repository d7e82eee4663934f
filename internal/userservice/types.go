package userservice

import (
	"database/sql"
	"time"

	"bloglist/internal/common"
)

type tokenScope string

const (
	TokenScopeActivate tokenScope = "token:activate"

	ActivationTokenTime time.Duration = 3 * 24 * time.Hour
	AccessTokenTime     time.Duration = 7 * 24 * time.Hour
	RefreshTokenTime    time.Duration = 30 * 24 * time.Hour
)

// AnonymousUser is the resolved identity for requests that carry no valid
// credential. Handlers decide per operation whether anonymous is acceptable.
var AnonymousUser = User{}

type UserService struct {
	m  *DBModel
	mb common.MessageProducer
	c  *common.Cache
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	Activated bool      `json:"activated"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`

	// BlogIDs is the ordered list of blogs this user owns, appended to on
	// every blog creation.
	BlogIDs []int64 `json:"blogs"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

type Token struct {
	Plain  string     `json:"token"`
	Hash   []byte     `json:"-"`
	UserID int        `json:"-"`
	Expiry time.Time  `json:"expiry"`
	Scope  tokenScope `json:"-"`
}

type AuthToken struct {
	AccessTokenPlain   string    `json:"access_token"`
	AccessTokenHash    []byte    `json:"-"`
	RefreshTokenPlain  string    `json:"refresh_token"`
	RefreshTokenHash   []byte    `json:"-"`
	UserID             int       `json:"user_id"`
	AccessTokenExpiry  time.Time `json:"access_token_expiry"`
	RefreshTokenExpiry time.Time `json:"refresh_token_expiry"`
}
