package models

import "strings"

// ApplicationStatus is the resolved state of a submitted application.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusWaitlisted  ApplicationStatus = "waitlisted"
	StatusOfferReady  ApplicationStatus = "offer_ready"
	StatusUnknown     ApplicationStatus = "unknown"
)

// WorkflowState is one node of the orchestrator state machine.
type WorkflowState string

const (
	StateInit            WorkflowState = "init"
	StateLogin           WorkflowState = "login"
	StateFindApplication WorkflowState = "find_application"
	StateCheckStatus     WorkflowState = "check_status"
	StateDownload        WorkflowState = "download"
	StateComplete        WorkflowState = "complete"
	StateFailed          WorkflowState = "failed"
)

// StatusPatterns maps each status label to the page-text substrings that
// indicate it. Lookup order is fixed: the more valuable statuses are checked
// before the generic pending bucket.
type StatusPatterns struct {
	OfferReady []string `yaml:"offer_ready,omitempty" json:"offer_ready,omitempty"`
	Accepted   []string `yaml:"accepted,omitempty"    json:"accepted,omitempty"`
	Rejected   []string `yaml:"rejected,omitempty"    json:"rejected,omitempty"`
	Pending    []string `yaml:"pending,omitempty"     json:"pending,omitempty"`
}

// Match scans pageText against the pattern table in priority order and
// returns the first status whose pattern appears, along with the matching
// pattern. Matching is case-insensitive substring containment.
func (p StatusPatterns) Match(pageText string) (ApplicationStatus, string, bool) {
	lower := strings.ToLower(pageText)

	buckets := []struct {
		status   ApplicationStatus
		patterns []string
	}{
		{StatusOfferReady, p.OfferReady},
		{StatusAccepted, p.Accepted},
		{StatusRejected, p.Rejected},
		{StatusPending, p.Pending},
	}

	for _, bucket := range buckets {
		for _, pattern := range bucket.patterns {
			if pattern == "" {
				continue
			}

			if strings.Contains(lower, strings.ToLower(pattern)) {
				return bucket.status, pattern, true
			}
		}
	}

	return StatusUnknown, "", false
}

// PortalProfile is the full declarative description of one portal: its URL,
// the three phase workflows, and the status pattern table.
type PortalProfile struct {
	PortalName      string         `yaml:"portal_name"                json:"portal_name" validate:"required"`
	PortalURL       string         `yaml:"portal_url"                 json:"portal_url"  validate:"required,url"`
	Login           Workflow       `yaml:"login"                      json:"login"       validate:"required"`
	Navigation      Workflow       `yaml:"navigation"                 json:"navigation"  validate:"required"`
	Download        Workflow       `yaml:"download"                   json:"download"    validate:"required"`
	StatusDetection StatusPatterns `yaml:"status_detection,omitempty" json:"status_detection"`

	// LoginSuccessIndicators, when set, overrides the generic dashboard
	// marker heuristic used to verify a login attempt.
	LoginSuccessIndicators []string `yaml:"login_success_indicators,omitempty" json:"login_success_indicators,omitempty"`

	TimeoutSeconds int    `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Notes          string `yaml:"notes,omitempty"   json:"notes,omitempty"`
}
