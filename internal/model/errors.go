package model

import "errors"

var (
	// ErrNotFound is returned by stores when no record matches.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials covers every login failure: unknown login key,
	// inactive account or wrong password. Callers must not be able to tell
	// these apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers every access token failure: malformed,
	// expired or wrongly signed.
	ErrInvalidToken = errors.New("invalid access token")

	// Refresh rotation failures. All of them map to the same external
	// "session ended, log in again" response.
	ErrRefreshUnknown  = errors.New("unknown refresh token")
	ErrRefreshRevoked  = errors.New("refresh token revoked")
	ErrRefreshExpired  = errors.New("refresh token expired")
	ErrSubjectInactive = errors.New("subject inactive")

	// ErrForbidden indicates a role mismatch on a role-scoped route.
	ErrForbidden = errors.New("forbidden")

	// ErrCNPJTaken indicates the CNPJ is already registered.
	ErrCNPJTaken = errors.New("cnpj already registered")
)
