package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunContext_Substitute(t *testing.T) {
	runCtx := RunContext{
		Username:      "student@example.com",
		Password:      "hunter2",
		ApplicationID: "APP-42",
	}

	assert.Equal(t, "student@example.com", runCtx.Substitute("{username}"))
	assert.Equal(t, "id APP-42 for student@example.com", runCtx.Substitute("id {application_id} for {username}"))
}

func TestRunContext_Substitute_UnknownTokenUntouched(t *testing.T) {
	runCtx := RunContext{Username: "u"}

	assert.Equal(t, "{unknown} u", runCtx.Substitute("{unknown} {username}"))
}

func TestRunContext_Substitute_Empty(t *testing.T) {
	runCtx := RunContext{}

	assert.Equal(t, "", runCtx.Substitute(""))
}

func TestRunContext_SubstituteAll(t *testing.T) {
	runCtx := RunContext{ApplicationID: "APP-42", StudentName: "Dana Jones"}

	out := runCtx.SubstituteAll([]string{"{application_id}", "{student_name}", "literal"})

	assert.Equal(t, []string{"APP-42", "Dana Jones", "literal"}, out)
}

func TestRunContext_SubstituteAll_Nil(t *testing.T) {
	runCtx := RunContext{}

	assert.Nil(t, runCtx.SubstituteAll(nil))
}

func TestCheckRequest_RunContext(t *testing.T) {
	req := CheckRequest{
		Portal:        "demo",
		Username:      "u",
		Password:      "p",
		ApplicationID: "APP-1",
	}

	runCtx := req.RunContext("Demo University")

	assert.Equal(t, "u", runCtx.Username)
	assert.Equal(t, "Demo University", runCtx.PortalName)
}
