package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActionStep_Timeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, ActionStep{TimeoutSeconds: 10}.Timeout())
	assert.Equal(t, 30*time.Second, ActionStep{}.Timeout())
}

func TestWorkflow_Retries(t *testing.T) {
	assert.Equal(t, 3, Workflow{MaxRetries: 3}.Retries())
	// A workflow always gets at least one attempt.
	assert.Equal(t, 1, Workflow{}.Retries())
}

func TestWorkflow_RetryDelay(t *testing.T) {
	assert.Equal(t, 5*time.Second, Workflow{RetryDelaySecs: 5}.RetryDelay())
	assert.Equal(t, time.Duration(0), Workflow{}.RetryDelay())
}
