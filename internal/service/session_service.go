package service

import (
	"context"
	"time"

	"github.com/xxxsen/examprep/internal/model"
)

const (
	defaultSessionMinutes = 25
	defaultSessionSubject = "General Study"
)

// SessionService acknowledges study sessions without keeping them.
type SessionService struct {
	now func() time.Time
}

func NewSessionService() *SessionService {
	return &SessionService{now: time.Now}
}

func (s *SessionService) Save(ctx context.Context, in model.StudySession) model.StudySession {
	if in.Duration <= 0 {
		in.Duration = defaultSessionMinutes
	}
	if in.Timestamp == "" {
		in.Timestamp = s.now().Format(time.RFC3339)
	}
	if in.Subject == "" {
		in.Subject = defaultSessionSubject
	}
	return in
}

func (s *SessionService) List(ctx context.Context) []model.StudySession {
	return []model.StudySession{}
}
