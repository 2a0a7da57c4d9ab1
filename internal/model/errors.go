package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Nickname errors
	ErrNicknameTaken = errors.New("nickname is already taken")
	ErrNicknameInUse = errors.New("nickname is in use by a connected session")
	ErrInvalidNick   = errors.New("invalid nickname")

	// Game errors
	ErrGameNotFound     = errors.New("game not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAlreadyAnswered  = errors.New("question already answered by this player")
)
