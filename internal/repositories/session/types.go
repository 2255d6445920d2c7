package session

import "github.com/livetally/livetally/internal/models"

type CreateSessionInput struct {
}

type CreateSessionOutput struct {
	Session *models.SessionSnapshot
}

type GetSessionInput struct {
	Code string
}

type GetSessionOutput struct {
	Session *models.SessionSnapshot
}

type UpdateSessionInput struct {
	Code string

	// Apply is invoked with the live session while its lock is held. It must
	// not retain the *models.Session after returning.
	Apply func(session *models.Session) error
}

type ListSessionsInput struct {
}

type ListSessionsOutput struct {
	Sessions []*models.SessionSnapshot
}
