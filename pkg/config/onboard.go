package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smerajiapply/submission/pkg/models"
)

// TemplateProfile builds a starter profile for a new portal. The steps are
// generic and meant to be customized before the first real check.
func TemplateProfile(portalName, portalURL string) *models.PortalProfile {
	return &models.PortalProfile{
		PortalName: portalName,
		PortalURL:  portalURL,
		Login: models.Workflow{
			Steps: []models.ActionStep{
				{
					Action:         models.ActionFindAndFill,
					TargetType:     models.TargetInputField,
					Selectors:      []string{`input[type="email"]`, `input[name="username"]`},
					Hints:          []string{"Username", "Email"},
					Value:          "{username}",
					TimeoutSeconds: 10,
					Description:    "Fill username field",
				},
				{
					Action:         models.ActionFindAndFill,
					TargetType:     models.TargetInputField,
					Selectors:      []string{`input[type="password"]`},
					Hints:          []string{"Password"},
					Value:          "{password}",
					TimeoutSeconds: 10,
					Description:    "Fill password field",
				},
				{
					Action:         models.ActionFindAndClick,
					TargetType:     models.TargetButton,
					Selectors:      []string{`button[type="submit"]`},
					Hints:          []string{"Sign in", "Login"},
					TimeoutSeconds: 10,
					Description:    "Click login button",
				},
				{
					Action:         models.ActionWaitForLoad,
					TimeoutSeconds: 5,
					Description:    "Wait for page to load after login",
				},
			},
			MaxRetries:     3,
			RetryDelaySecs: 2,
		},
		Navigation: models.Workflow{
			Steps: []models.ActionStep{
				{
					Action:         models.ActionFindAndClick,
					TargetType:     models.TargetMenuItem,
					Hints:          []string{"Applications", "Offers"},
					TimeoutSeconds: 10,
					Description:    "Click applications/offers menu",
				},
				{
					Action:         models.ActionWaitForLoad,
					TimeoutSeconds: 5,
					Description:    "Wait for list to load",
				},
				{
					Action:         models.ActionFindAndClick,
					TargetType:     models.TargetText,
					Hints:          []string{"{application_id}"},
					TimeoutSeconds: 10,
					Description:    "Click on application ID",
				},
				{
					Action:         models.ActionWaitForLoad,
					TimeoutSeconds: 5,
					Description:    "Wait for details to load",
				},
			},
			MaxRetries:     3,
			RetryDelaySecs: 2,
		},
		Download: models.Workflow{
			Steps: []models.ActionStep{
				{
					Action:           models.ActionFindAndClick,
					TargetType:       models.TargetButton,
					Hints:            []string{"Download", "Print Offer", "View Letter"},
					TriggersDownload: true,
					TimeoutSeconds:   30,
					Description:      "Click download button",
				},
			},
			MaxRetries:     3,
			RetryDelaySecs: 2,
		},
		StatusDetection: models.StatusPatterns{
			OfferReady: []string{"Offer", "Conditional offer"},
			Accepted:   []string{"Accepted", "Enrolled"},
			Rejected:   []string{"Rejected", "Declined"},
			Pending:    []string{"Pending", "Under review"},
		},
		TimeoutSeconds: 30,
		Notes:          fmt.Sprintf("Template profile, customize steps for %s", portalName),
	}
}

// WriteTemplate writes a starter profile into dir and returns its path. The
// file name is the lowercased portal name with spaces replaced.
func WriteTemplate(dir, portalName, portalURL string) (string, error) {
	profile := TemplateProfile(portalName, portalURL)

	content, err := yaml.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("failed to encode template: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create profile directory: %w", err)
	}

	name := strings.ToLower(strings.ReplaceAll(portalName, " ", "_"))
	path := filepath.Join(dir, name+".yaml")

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("could not write template: %w", err)
	}

	return path, nil
}
