// Package common defines sentinel errors shared by the repositories, services
// and transport layers of gophsocial. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration.
	ErrEmailExists = errors.New("email already exists")

	// Relationship errors.
	ErrAlreadyFollowed = errors.New("user already followed")
	ErrNotFollowed     = errors.New("user not followed")
	ErrSelfFollow      = errors.New("cannot follow yourself")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
