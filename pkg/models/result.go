package models

import "time"

// StepResult is the normalized outcome of one executed step. Step-level
// errors are converted into this value inside the executor; they never
// propagate as Go errors past it.
type StepResult struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"` // artifact path for capture steps
	Err     string `json:"error,omitempty"`
}

// OK is a successful result with no payload.
func OK() StepResult { return StepResult{Success: true} }

// Failure wraps an error message into an unsuccessful result.
func Failure(msg string) StepResult { return StepResult{Success: false, Err: msg} }

// CheckRequest is the caller-facing request to check one application.
type CheckRequest struct {
	Portal        string `json:"portal"   validate:"required"`
	Username      string `json:"username" validate:"required"`
	Password      string `json:"password" validate:"required"`
	ApplicationID string `json:"application_id,omitempty"`
	StudentName   string `json:"student_name,omitempty"`
	StudentEmail  string `json:"student_email,omitempty"`
}

// RunContext builds the write-once parameter bag for this request.
func (r CheckRequest) RunContext(portalName string) RunContext {
	return RunContext{
		Username:      r.Username,
		Password:      r.Password,
		ApplicationID: r.ApplicationID,
		StudentName:   r.StudentName,
		StudentEmail:  r.StudentEmail,
		PortalName:    portalName,
	}
}

// ApplicationOutcome is the single terminal record of a full workflow run.
// Exactly one is produced per run, whether it succeeded or failed.
type ApplicationOutcome struct {
	Success         bool              `json:"success"`
	Status          ApplicationStatus `json:"status"`
	StatusText      string            `json:"status_text,omitempty"`
	OfferDownloaded bool              `json:"offer_downloaded"`
	OfferPath       string            `json:"offer_path,omitempty"`
	Message         string            `json:"message"`
	Metadata        map[string]any    `json:"metadata,omitempty"`
	Timestamp       time.Time         `json:"timestamp"`
}
