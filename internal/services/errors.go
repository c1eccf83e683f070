package services

import "errors"

var (
	ErrTitleContentRequired = errors.New("title and content are required")
	ErrSlugRequired         = errors.New("a slug could not be derived from the title")
	ErrEmptyComment         = errors.New("comment cannot be empty")
	ErrCommentTooLong       = errors.New("comment is too long")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrTooManyAttempts      = errors.New("too many login attempts, try again later")
)
