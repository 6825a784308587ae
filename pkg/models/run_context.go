package models

import "strings"

// RunContext carries the runtime parameters of one workflow run. Fields are
// set once when the run starts and only read afterwards; the executor
// substitutes them into step values and hints but never writes back.
type RunContext struct {
	Username      string
	Password      string
	ApplicationID string
	StudentName   string
	StudentEmail  string
	PortalName    string
}

// Substitute replaces {param} tokens in s with the corresponding context
// values. Unknown tokens are left untouched.
func (c RunContext) Substitute(s string) string {
	if s == "" {
		return s
	}

	replacer := strings.NewReplacer(
		"{username}", c.Username,
		"{password}", c.Password,
		"{application_id}", c.ApplicationID,
		"{student_name}", c.StudentName,
		"{student_email}", c.StudentEmail,
		"{portal_name}", c.PortalName,
	)

	return replacer.Replace(s)
}

// SubstituteAll applies Substitute to every element, returning a new slice.
func (c RunContext) SubstituteAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	out := make([]string, len(in))
	for i, s := range in {
		out[i] = c.Substitute(s)
	}

	return out
}
