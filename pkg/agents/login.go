package agents

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smerajiapply/submission/pkg/browser"
	"github.com/smerajiapply/submission/pkg/executor"
	"github.com/smerajiapply/submission/pkg/models"
)

// Heuristic page markers used when a profile does not declare its own
// login success indicators.
var (
	loginPageMarkers = []string{"sign in", "login", "username", "password"}
	dashboardMarkers = []string{"dashboard", "welcome", "applications", "logout"}
)

// postLoginSettle lets redirect chains after credential submission finish
// before verification reads the page.
const postLoginSettle = 2 * time.Second

// LoginAgent authenticates against a portal using its login workflow.
type LoginAgent struct {
	runner
}

func NewLoginAgent(session *browser.Session, exec *executor.Executor, logger *slog.Logger) *LoginAgent {
	return &LoginAgent{runner{session: session, exec: exec, logger: logger}}
}

// Login navigates to the portal, runs the login workflow, and verifies the
// resulting page. Each retry starts over from the portal URL.
func (a *LoginAgent) Login(profile *models.PortalProfile, runCtx models.RunContext) error {
	return a.withRetries(profile.Login, "login", func() error {
		a.logger.Info("Navigating to portal", "url", profile.PortalURL)

		if err := a.session.Navigate(profile.PortalURL); err != nil {
			return fmt.Errorf("could not open portal: %w", err)
		}

		time.Sleep(postLoginSettle)

		if _, err := a.runWorkflow(profile.Login, runCtx); err != nil {
			return err
		}

		time.Sleep(postLoginSettle)
		a.session.CaptureScreenshot("after_login")

		return a.verify(profile.LoginSuccessIndicators)
	})
}

// verify decides whether the session landed past the login form. A profile
// with explicit success indicators requires one of them on the page; the
// heuristic otherwise treats a page that still shows login markers without
// any dashboard markers as a failed login.
func (a *LoginAgent) verify(successIndicators []string) error {
	text, err := a.session.Active().VisibleText()
	if err != nil {
		return fmt.Errorf("could not read page after login: %w", err)
	}

	lower := strings.ToLower(text)

	if len(successIndicators) > 0 {
		for _, indicator := range successIndicators {
			if containsAny(lower, []string{indicator}) {
				a.logger.Info("Found login success indicator", "indicator", indicator)

				return nil
			}
		}

		return ErrLoginFailed
	}

	if containsAny(lower, loginPageMarkers) && !containsAny(lower, dashboardMarkers) {
		a.logger.Warn("Still on login page after workflow")

		return ErrLoginFailed
	}

	a.logger.Info("Login verified")

	return nil
}
