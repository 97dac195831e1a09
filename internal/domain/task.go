package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus tracks an enhancement task through its lifecycle. Transitions
// are strictly forward; Completed and Error are terminal.
type TaskStatus string

const (
	StatusProcessing    TaskStatus = "processing"
	StatusParsingResume TaskStatus = "parsing_resume"
	StatusCallingAI     TaskStatus = "calling_ai"
	StatusCompleted     TaskStatus = "completed"
	StatusError         TaskStatus = "error"
)

// Terminal reports whether the status admits no further transitions.
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// EnhancementResult is the success payload of a finished task.
type EnhancementResult struct {
	OriginalATSScore int    `json:"original_ats_score"`
	EnhancedATSScore int    `json:"enhanced_ats_score"`
	Suggestions      string `json:"suggestions"`
	EnhancedText     string `json:"enhanced_resume"`
	PDFPath          string `json:"pdf_file,omitempty"`
}

// Task is one resume-enhancement request. Result and Error are each written
// at most once, at the terminal transition.
type Task struct {
	ID        uuid.UUID          `json:"task_id"`
	Status    TaskStatus         `json:"status"`
	Result    *EnhancementResult `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
