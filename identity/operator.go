package identity

import (
	"errors"
	"regexp"

	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3

	namePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minNameLength = 3
	maxNameLength = 20

	defaultHashCost = 12
)

var (
	nameRegex = regexp.MustCompile(namePattern)

	ErrNameTooShort    = errors.New("operator name too short")
	ErrNameTooLong     = errors.New("operator name too long")
	ErrInvalidName     = errors.New("invalid operator name format")
	ErrWeakPassword    = errors.New("weak operator password")
	ErrInvalidHashCost = errors.New("invalid bcrypt cost")
)

// Operator is the account allowed to run training.
type Operator struct {
	Name         string
	PasswordHash string
}

// OperatorConfig holds parameters for creating an Operator from a plain password.
type OperatorConfig struct {
	Name          string
	PlainPassword string
	HashCost      int // bcrypt cost, zero selects the default
}

// NewOperator validates the name and password strength and hashes the password.
func NewOperator(config OperatorConfig) (*Operator, error) {
	if err := validateName(config.Name); err != nil {
		return nil, err
	}

	if err := validatePassword(config.PlainPassword); err != nil {
		return nil, err
	}

	cost := config.HashCost
	if cost == 0 {
		cost = defaultHashCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, ErrInvalidHashCost
	}

	passwordHash, err := hashPassword(config.PlainPassword, cost)
	if err != nil {
		return nil, err
	}

	return &Operator{
		Name:         config.Name,
		PasswordHash: passwordHash,
	}, nil
}

// VerifyPassword verifies if the given password matches the stored hash.
func (o *Operator) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(password))
	return err == nil
}

// validateName validates the operator name.
func validateName(name string) error {
	if len(name) < minNameLength {
		return ErrNameTooShort
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	if !nameRegex.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// validatePassword checks the strength of the password.
func validatePassword(password string) error {
	result := zxcvbn.PasswordStrength(password, nil)
	if result.Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}

// hashPassword generates a bcrypt hash for the given password.
func hashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}
