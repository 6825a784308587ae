// Package models defines the declarative workflow and portal profile types
// shared by the automation engine.
package models

import "time"

// ActionKind identifies the operation an ActionStep performs.
type ActionKind string

const (
	ActionFindAndClick      ActionKind = "find_and_click"
	ActionFindAndFill       ActionKind = "find_and_fill"
	ActionWaitForLoad       ActionKind = "wait_for_load"
	ActionWaitForNavigation ActionKind = "wait_for_navigation"
	ActionCaptureDownload   ActionKind = "capture_download"
	ActionSwitchToNewTab    ActionKind = "switch_to_new_tab"
	ActionPressKey          ActionKind = "press_key"
	ActionScroll            ActionKind = "scroll"
	ActionWait              ActionKind = "wait"
)

// TargetKind classifies the UI element an ActionStep interacts with.
type TargetKind string

const (
	TargetButton     TargetKind = "button"
	TargetInputField TargetKind = "input_field"
	TargetDropdown   TargetKind = "dropdown"
	TargetMenuItem   TargetKind = "menu_item"
	TargetLink       TargetKind = "link"
	TargetText       TargetKind = "text"
	TargetAny        TargetKind = "any"
)

const defaultStepTimeoutSeconds = 30

// ActionStep is one declarative instruction in a workflow. Steps are
// immutable once loaded from a profile; parameters like {username} or
// {application_id} are substituted at execution time from the RunContext.
type ActionStep struct {
	Action            ActionKind `yaml:"action"                       json:"action"            validate:"required"`
	TargetType        TargetKind `yaml:"target_type,omitempty"        json:"target_type,omitempty"`
	Selectors         []string   `yaml:"selectors,omitempty"          json:"selectors,omitempty"`
	Hints             []string   `yaml:"hints,omitempty"              json:"hints,omitempty"`
	Value             string     `yaml:"value,omitempty"              json:"value,omitempty"`
	TimeoutSeconds    int        `yaml:"timeout,omitempty"            json:"timeout,omitempty"`
	OpensNewTab       bool       `yaml:"opens_new_tab,omitempty"      json:"opens_new_tab,omitempty"`
	TriggersDownload  bool       `yaml:"triggers_download,omitempty"  json:"triggers_download,omitempty"`
	UseJavascript     bool       `yaml:"use_javascript,omitempty"     json:"use_javascript,omitempty"`
	SuccessIndicators []string   `yaml:"success_indicators,omitempty" json:"success_indicators,omitempty"`
	ExpectedExtension string     `yaml:"expected_extension,omitempty" json:"expected_extension,omitempty"`
	Description       string     `yaml:"description,omitempty"        json:"description,omitempty"`
	Optional          bool       `yaml:"optional,omitempty"           json:"optional,omitempty"`
}

// Timeout returns the step timeout, falling back to the default when the
// profile left it unset.
func (s ActionStep) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return defaultStepTimeoutSeconds * time.Second
	}

	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Workflow is an ordered sequence of steps plus the retry policy applied to
// the sequence as a whole. A failed attempt re-runs from the first step;
// individual steps are never retried in place.
type Workflow struct {
	Steps          []ActionStep `yaml:"steps"                 json:"steps" validate:"required,min=1,dive"`
	MaxRetries     int          `yaml:"max_retries,omitempty" json:"max_retries"`
	RetryDelaySecs int          `yaml:"retry_delay,omitempty" json:"retry_delay"`
}

// Retries returns the configured attempt count, at least one.
func (w Workflow) Retries() int {
	if w.MaxRetries <= 0 {
		return 1
	}

	return w.MaxRetries
}

// RetryDelay returns the fixed pause between attempts.
func (w Workflow) RetryDelay() time.Duration {
	if w.RetryDelaySecs <= 0 {
		return 0
	}

	return time.Duration(w.RetryDelaySecs) * time.Second
}
