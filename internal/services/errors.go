package services

import (
	"errors"

	"github.com/anonto42/orion/backend/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrNotFound           = errors.New("not found")
)

// mapRepoErr turns repository sentinels into the service taxonomy.
func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrAlreadyExists):
		return ErrDuplicateEmail
	}
	return err
}
