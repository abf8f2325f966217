package domain

import "errors"

var (
	ErrTeamExists   = errors.New("team already exists")
	ErrMemberExists = errors.New("member already exists")
	ErrConflict     = errors.New("member was reassigned to another team")
	ErrInvalidRole  = errors.New("unknown application role")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)
