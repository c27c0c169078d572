package presence

import "errors"

var (
	ErrOpenSessionExists = errors.New("an open session already exists")
	ErrNoOpenSession     = errors.New("no open session found")
	ErrSessionNotFound   = errors.New("presence session not found")
)
