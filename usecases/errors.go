package usecases

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so login failures don't reveal which part was wrong.
	ErrInvalidCredentials = errors.New("username or password is incorrect")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrNoSession          = errors.New("no active session")

	ErrRoomNotFound = errors.New("room not found")
	// ErrNotHost is the explicit denial for an authenticated caller that does
	// not own the room. Distinct from ErrRoomNotFound on purpose.
	ErrNotHost = errors.New("you are not the host of this room")
)
