package credentials

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/secrets"
)

// StaticStore holds exactly one username/password pair. The password is
// kept only as a bcrypt hash.
type StaticStore struct {
	username string
	hash     []byte
}

type Option func(*options)

type options struct {
	cost int
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(o *options) {
		o.cost = cost
	}
}

func NewStaticStore(username, password string, opts ...Option) (*StaticStore, error) {
	o := options{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(&o)
	}
	if username == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "username cannot be empty")
	}
	hash, err := secrets.HashWithCost(password, o.cost)
	if err != nil {
		return nil, err
	}
	return &StaticStore{username: username, hash: hash}, nil
}

// Verify checks both halves of the pair on every call so a wrong username
// costs the same as a wrong password.
func (s *StaticStore) Verify(_ context.Context, username, password string) (bool, error) {
	userOK := secrets.Equal(username, s.username)
	passOK, err := secrets.Matches(password, s.hash)
	if err != nil {
		return false, err
	}
	return userOK && passOK, nil
}
