package service

import "errors"

var (
	ErrEmailInUse        = errors.New("email already exists")
	ErrNoBooksFound      = errors.New("no books found")
	ErrBookNotFound      = errors.New("book not found")
	ErrInvalidStatus     = errors.New("invalid reading status")
	ErrInvalidUserOrBook = errors.New("invalid user or book id")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmptyReadingList  = errors.New("no books in reading list")
	ErrEntryNotFound     = errors.New("reading list entry not found")
)
