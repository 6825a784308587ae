// Package config loads and validates portal profiles from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/smerajiapply/submission/pkg/models"
)

// Source resolves portal names to validated profiles.
type Source interface {
	Profile(name string) (*models.PortalProfile, error)
	Portals() ([]string, error)
}

// DirSource reads profiles from a directory of <portal>.yaml files.
type DirSource struct {
	dir      string
	validate *validator.Validate
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{
		dir:      dir,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Profile loads, schema-checks, and validates the named portal's profile.
func (s *DirSource) Profile(name string) (*models.PortalProfile, error) {
	path := filepath.Join(s.dir, name+".yaml")

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("portal profile not found: %s: %w", path, err)
	}

	if err := validateSchema(content); err != nil {
		return nil, fmt.Errorf("profile %s is not well formed: %w", name, err)
	}

	var profile models.PortalProfile
	if err := yaml.Unmarshal(content, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", name, err)
	}

	if err := s.validate.Struct(&profile); err != nil {
		return nil, fmt.Errorf("profile %s failed validation: %w", name, err)
	}

	return &profile, nil
}

// Portals lists the portal names available in the directory.
func (s *DirSource) Portals() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("could not read profile directory: %w", err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}

	return names, nil
}

// validateSchema checks the raw document's structure before it is bound to
// typed structs, so authors get field-level messages for shape mistakes.
func validateSchema(content []byte) error {
	var document any
	if err := yaml.Unmarshal(content, &document); err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(profileSchema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return err
	}

	if !result.Valid() {
		var errors []string
		for _, schemaError := range result.Errors() {
			errors = append(errors, schemaError.String())
		}

		return fmt.Errorf("schema validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}
