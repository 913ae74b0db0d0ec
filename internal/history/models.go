package history

import (
	"time"

	"onboard/internal/upload"
)

// Attempt is one journaled upload attempt.
type Attempt struct {
	ID            string
	FileName      string
	FileSize      int64
	State         upload.AttemptState
	FailureReason string
	CandidateName string
	SkillCount    int
	HasEmbeddings bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
