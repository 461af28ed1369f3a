package repository

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateCandidacy = errors.New("candidacy already exists")
)
