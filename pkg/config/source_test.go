package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smerajiapply/submission/pkg/models"
)

const validProfile = `portal_name: uni_portal
portal_url: https://apply.university.example.com
login:
  steps:
    - action: find_and_fill
      target_type: input_field
      selectors:
        - "input[name=username]"
      value: "{username}"
    - action: find_and_click
      target_type: button
      hints:
        - "Sign in"
  max_retries: 2
  retry_delay: 1
navigation:
  steps:
    - action: find_and_click
      target_type: text
      hints:
        - "{application_id}"
download:
  steps:
    - action: find_and_click
      target_type: button
      hints:
        - "Download Offer"
      triggers_download: true
status_detection:
  offer_ready:
    - "offer of admission"
  pending:
    - "under review"
`

func writeProfile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDirSource_Profile(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "uni_portal.yaml", validProfile)

	source := NewDirSource(dir)

	profile, err := source.Profile("uni_portal")

	require.NoError(t, err)
	assert.Equal(t, "uni_portal", profile.PortalName)
	assert.Equal(t, "https://apply.university.example.com", profile.PortalURL)
	require.Len(t, profile.Login.Steps, 2)
	assert.Equal(t, models.ActionFindAndFill, profile.Login.Steps[0].Action)
	assert.Equal(t, 2, profile.Login.MaxRetries)
	assert.True(t, profile.Download.Steps[0].TriggersDownload)
	assert.Equal(t, []string{"offer of admission"}, profile.StatusDetection.OfferReady)
}

func TestDirSource_ProfileNotFound(t *testing.T) {
	source := NewDirSource(t.TempDir())

	_, err := source.Profile("missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDirSource_RejectsUnknownAction(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "bad.yaml", `portal_name: bad
portal_url: https://bad.example.com
login:
  steps:
    - action: teleport
navigation:
  steps:
    - action: wait
download:
  steps:
    - action: wait
`)

	source := NewDirSource(dir)

	_, err := source.Profile("bad")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not well formed")
}

func TestDirSource_RejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "bad.yaml", validProfile+`
unexpected_field: true
`)

	source := NewDirSource(dir)

	_, err := source.Profile("bad")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not well formed")
}

func TestDirSource_RejectsMissingWorkflow(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "bad.yaml", `portal_name: bad
portal_url: https://bad.example.com
login:
  steps:
    - action: wait
navigation:
  steps:
    - action: wait
`)

	source := NewDirSource(dir)

	_, err := source.Profile("bad")

	require.Error(t, err)
}

func TestDirSource_Portals(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "alpha.yaml", validProfile)
	writeProfile(t, dir, "beta.yaml", validProfile)
	writeProfile(t, dir, "notes.txt", "not a profile")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	source := NewDirSource(dir)

	names, err := source.Portals()

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, names)
}

func TestWriteTemplate_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteTemplate(dir, "New University", "https://apply.newuni.example.com")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "new_university.yaml"), path)

	// The generated template must load back through the same validation gate.
	source := NewDirSource(dir)

	profile, err := source.Profile("new_university")

	require.NoError(t, err)
	assert.Equal(t, "New University", profile.PortalName)
	assert.NotEmpty(t, profile.Login.Steps)
	assert.True(t, profile.Download.Steps[0].TriggersDownload)
}
