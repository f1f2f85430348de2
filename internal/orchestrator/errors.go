// SPDX-License-Identifier: MPL-2.0

package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

const (
	// StageResolveTool locates the cordova command.
	StageResolveTool Stage = iota + 1
	// StageCreateProject runs "cordova create".
	StageCreateProject
	// StagePersistManifest writes the manifest into the project.
	StagePersistManifest
	// StageInstallPlugins runs "cordova plugin add".
	StageInstallPlugins
	// StageAddPlatforms runs "cordova platform add".
	StageAddPlatforms
	// StageProcessPlatforms copies docs, creates shortcuts and writes metadata per sub-platform.
	StageProcessPlatforms
	// StagePackage runs "cordova build".
	StagePackage
	// StageRun runs "cordova run".
	StageRun
	// StageOpen opens the IDE project.
	StageOpen
)

var (
	// ErrStage is the sentinel error wrapped by StageError.
	ErrStage = errors.New("orchestration stage failed")
	// ErrPrecondition is the sentinel error wrapped by PreconditionError.
	ErrPrecondition = errors.New("precondition not met")
	// ErrSubPlatform is the sentinel error wrapped by SubPlatformError.
	ErrSubPlatform = errors.New("sub-platform processing failed")
	// ErrUnknownGroup is returned by Registry.Lookup for unregistered groups.
	ErrUnknownGroup = errors.New("unknown platform group")
)

var stageNames = map[Stage]string{
	StageResolveTool:      "resolve tool",
	StageCreateProject:    "create project",
	StagePersistManifest:  "persist manifest",
	StageInstallPlugins:   "install plugins",
	StageAddPlatforms:     "add platforms",
	StageProcessPlatforms: "process platforms",
	StagePackage:          "package",
	StageRun:              "run",
	StageOpen:             "open",
}

type (
	// Stage identifies one step of an orchestration run.
	Stage int

	// StageError reports a terminal failure. The stages after Stage did not run.
	StageError struct {
		Stage        Stage
		SubPlatforms []platform.ID
		// Plugins is the attempted plugin set when Stage is StageInstallPlugins.
		Plugins []string
		Cause   error
	}

	// PreconditionError reports an operation refused before any subprocess started.
	PreconditionError struct {
		Operation   string
		SubPlatform platform.ID
		Reason      string
	}

	// SubPlatformError reports a post-processing failure of one sub-platform.
	SubPlatformError struct {
		SubPlatform platform.ID
		Cause       error
	}
)

// String returns the stage name.
func (s Stage) String() string {
	if n, ok := stageNames[s]; ok {
		return n
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Error implements the error interface.
func (e *StageError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s failed", e.Stage)
	if len(e.SubPlatforms) > 0 {
		fmt.Fprintf(&b, " for %s", strings.Join(platform.Strings(e.SubPlatforms), ", "))
	}
	if len(e.Plugins) > 0 {
		fmt.Fprintf(&b, " (plugins: %s)", strings.Join(e.Plugins, ", "))
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns ErrStage and the underlying cause.
func (e *StageError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrStage}
	}
	return []error{ErrStage, e.Cause}
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot %s %s: %s", e.Operation, e.SubPlatform.Name(), e.Reason)
}

// Unwrap returns ErrPrecondition for errors.Is() compatibility.
func (e *PreconditionError) Unwrap() error { return ErrPrecondition }

// Error implements the error interface.
func (e *SubPlatformError) Error() string {
	return fmt.Sprintf("%s: %v", e.SubPlatform, e.Cause)
}

// Unwrap returns ErrSubPlatform and the underlying cause.
func (e *SubPlatformError) Unwrap() []error { return []error{ErrSubPlatform, e.Cause} }
