// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "manifest.schema.json"

// ErrInvalidManifest is the sentinel error wrapped by InvalidManifestError.
var ErrInvalidManifest = errors.New("invalid manifest")

//go:embed manifest.schema.json
var schemaJSON []byte

var (
	manifestSchema     *jsonschema.Schema
	manifestSchemaOnce sync.Once
	manifestSchemaErr  error
)

// InvalidManifestError is returned when a manifest fails structural validation.
// It wraps ErrInvalidManifest for errors.Is() compatibility.
type InvalidManifestError struct {
	Source string
	Cause  error
}

// Error implements the error interface.
func (e *InvalidManifestError) Error() string {
	return fmt.Sprintf("invalid manifest %s: %v", e.Source, e.Cause)
}

// Unwrap returns ErrInvalidManifest so callers can use errors.Is.
func (e *InvalidManifestError) Unwrap() error { return ErrInvalidManifest }

func loadSchema() (*jsonschema.Schema, error) {
	manifestSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaResource, bytes.NewReader(schemaJSON)); err != nil {
			manifestSchemaErr = err
			return
		}
		manifestSchema, manifestSchemaErr = compiler.Compile(schemaResource)
	})
	return manifestSchema, manifestSchemaErr
}

// Parse decodes and validates manifest JSON. source names the input in
// error messages.
func Parse(data []byte, source string) (*Manifest, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidManifestError{Source: source, Cause: fmt.Errorf("not valid JSON: %w", err)}
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load manifest schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &InvalidManifestError{Source: source, Cause: err}
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &InvalidManifestError{Source: source, Cause: err}
	}

	u, err := url.Parse(m.StartURL)
	if err != nil || !u.IsAbs() || u.Hostname() == "" {
		return nil, &InvalidManifestError{
			Source: source,
			Cause:  fmt.Errorf("start_url %q must be an absolute URL with a host", m.StartURL),
		}
	}

	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data, path)
}

// WriteToFile serializes m as indented JSON at path, creating parent
// directories as needed.
func WriteToFile(m *Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ApplyUpdated replaces dir/FileName with dir/UpdatedFileName when the latter
// exists, consuming it. It reports whether a replacement happened; calling it
// again after a replacement is a no-op.
func ApplyUpdated(dir string) (bool, error) {
	updated := filepath.Join(dir, UpdatedFileName)
	if _, err := os.Stat(updated); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat updated manifest: %w", err)
	}
	if err := os.Rename(updated, filepath.Join(dir, FileName)); err != nil {
		return false, fmt.Errorf("apply updated manifest: %w", err)
	}
	return true, nil
}
