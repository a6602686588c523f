package errors

import "fmt"

var (
	ErrEmptyCredentials = fmt.Errorf("username and password are required")
	ErrUsernameTaken    = fmt.Errorf("username already taken")
	ErrUserNotFound     = fmt.Errorf("user not found")
	ErrInvalidPassword  = fmt.Errorf("invalid password")
	ErrInvalidSession   = fmt.Errorf("session id is invalid")
	ErrWorkerPanic      = fmt.Errorf("worker panic")
)
