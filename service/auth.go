package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-qlearn/identity"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
)

const (
	defaultTokenTTL = 24 * time.Hour

	// OperatorRole is the role claim carried by tokens allowed to train.
	OperatorRole = "operator"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Auth signs the configured operator in.
type Auth struct {
	operator  *identity.Operator
	tokenizer i.Tokenizer
	tokenTTL  time.Duration
}

// NewAuthService creates an Auth. A non-positive ttl selects a 24 hour token lifetime.
func NewAuthService(operator *identity.Operator, tokenizer i.Tokenizer, ttl time.Duration) (*Auth, error) {
	if operator == nil || tokenizer == nil {
		return nil, errors.New("operator and tokenizer are required")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Auth{
		operator:  operator,
		tokenizer: tokenizer,
		tokenTTL:  ttl,
	}, nil
}

// SignIn checks the credentials and returns a signed operator token.
func (a *Auth) SignIn(name, password string) (string, error) {
	if name != a.operator.Name || !a.operator.VerifyPassword(password) {
		return "", ErrInvalidCredentials
	}

	return a.tokenizer.Generate(map[string]interface{}{
		"sub":  a.operator.Name,
		"role": OperatorRole,
	}, a.tokenTTL)
}
