// SPDX-License-Identifier: MPL-2.0

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

// GenerationInfoFileName is the metadata file written next to generated projects.
const GenerationInfoFileName = "generationInfo.json"

type (
	// GenerationInfo describes one generation run. Every file written by a
	// run carries the same RunID.
	GenerationInfo struct {
		RunID       string        `json:"runId"`
		Generator   string        `json:"generator"`
		Version     string        `json:"version"`
		PlatformID  string        `json:"platformId"`
		SubPlatform platform.ID   `json:"subPlatform,omitempty"`
		Platforms   []platform.ID `json:"platforms"`
		StartURL    string        `json:"startUrl"`
		GeneratedAt time.Time     `json:"generatedAt"`
	}

	// MetadataWriter writes GenerationInfo files for one run.
	MetadataWriter struct {
		runID     string
		generator string
		version   string
		startURL  string
		platforms []platform.ID
		now       func() time.Time
	}

	// MetadataOption configures a MetadataWriter.
	MetadataOption func(*MetadataWriter)
)

// WithClock sets the time source used for GeneratedAt.
func WithClock(now func() time.Time) MetadataOption {
	return func(w *MetadataWriter) { w.now = now }
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) MetadataOption {
	return func(w *MetadataWriter) { w.runID = id }
}

// NewMetadataWriter creates a writer for a run generating platforms from startURL.
func NewMetadataWriter(generator, version, startURL string, platforms []platform.ID, opts ...MetadataOption) *MetadataWriter {
	w := &MetadataWriter{
		generator: generator,
		version:   version,
		startURL:  startURL,
		platforms: platforms,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.runID == "" {
		w.runID = uuid.NewString()
	}
	return w
}

// RunID returns the identifier shared by every file of the run.
func (w *MetadataWriter) RunID() string { return w.runID }

// Write writes the run metadata into dir. A non-empty sub scopes the file to
// one sub-platform.
func (w *MetadataWriter) Write(dir string, sub platform.ID) error {
	info := GenerationInfo{
		RunID:       w.runID,
		Generator:   w.generator,
		Version:     w.version,
		PlatformID:  platform.GroupID,
		SubPlatform: sub,
		Platforms:   w.platforms,
		StartURL:    w.startURL,
		GeneratedAt: w.now().UTC(),
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("encode generation info: %w", err)
	}
	path := filepath.Join(dir, GenerationInfoFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write generation info %s: %w", path, err)
	}
	return nil
}

// ReadGenerationInfo loads the metadata file in dir.
func ReadGenerationInfo(dir string) (*GenerationInfo, error) {
	data, err := os.ReadFile(filepath.Join(dir, GenerationInfoFileName))
	if err != nil {
		return nil, err
	}
	var info GenerationInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decode generation info: %w", err)
	}
	return &info, nil
}
