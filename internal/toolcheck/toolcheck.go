// Package toolcheck verifies that an external tool the orchestration
// depends on is installed and recent enough, installing it once via an
// injected installer when it is missing.
package toolcheck

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/cloudbench/gcsbench/internal/logging"
)

// Tool describes an external dependency to check for.
type Tool struct {
	// Name is the executable looked up on PATH.
	Name string
	// VersionArgs invokes the tool so its version appears in output,
	// usually ["--version"]. Empty skips the version gate.
	VersionArgs []string
	// MinVersion is the lowest acceptable version. Empty skips the
	// version gate.
	MinVersion string
}

// Installer installs a missing tool. Orchestration injects a real
// package-manager-backed implementation; tests inject fakes.
type Installer interface {
	Install(ctx context.Context, tool string) error
}

// InstallerFunc adapts a function to the Installer interface.
type InstallerFunc func(ctx context.Context, tool string) error

func (f InstallerFunc) Install(ctx context.Context, tool string) error { return f(ctx, tool) }

// CommandInstaller installs tools by running a fixed argv with the
// tool name appended, e.g. {"pip", "install"} or
// {"apt-get", "install", "-y"}.
type CommandInstaller struct {
	Argv []string
}

func (c CommandInstaller) Install(ctx context.Context, tool string) error {
	if len(c.Argv) == 0 {
		return fmt.Errorf("installer has no command configured")
	}
	args := append(append([]string(nil), c.Argv[1:]...), tool)
	out, err := commandOutput(ctx, c.Argv[0], args...)
	if err != nil {
		return fmt.Errorf("install %s: %w (output: %s)", tool, err, strings.TrimSpace(out))
	}
	return nil
}

// ToolMissingError reports a tool that is absent or unusable after the
// managed install attempt.
type ToolMissingError struct {
	Tool string
	Err  error
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("required tool %q is not usable: %v", e.Tool, e.Err)
}

func (e *ToolMissingError) Unwrap() error { return e.Err }

// Seams for tests.
var (
	lookPath      = exec.LookPath
	commandOutput = func(ctx context.Context, name string, args ...string) (string, error) {
		out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
		return string(out), err
	}
)

// Ensure checks that the tool is on PATH and satisfies its minimum
// version. A missing tool triggers one managed install via inst before
// the check is repeated; a nil inst skips the install attempt.
func Ensure(ctx context.Context, tool Tool, inst Installer) error {
	err := check(ctx, tool)
	if err == nil {
		return nil
	}
	if inst == nil {
		return &ToolMissingError{Tool: tool.Name, Err: err}
	}

	logging.Eventf("tool %s unavailable (%v), attempting managed install", tool.Name, err)
	if installErr := inst.Install(ctx, tool.Name); installErr != nil {
		return &ToolMissingError{Tool: tool.Name, Err: installErr}
	}

	if err := check(ctx, tool); err != nil {
		return &ToolMissingError{Tool: tool.Name, Err: err}
	}
	return nil
}

func check(ctx context.Context, tool Tool) error {
	if _, err := lookPath(tool.Name); err != nil {
		return fmt.Errorf("not found on PATH: %w", err)
	}
	if tool.MinVersion == "" || len(tool.VersionArgs) == 0 {
		return nil
	}

	out, err := commandOutput(ctx, tool.Name, tool.VersionArgs...)
	if err != nil {
		return fmt.Errorf("version probe failed: %w", err)
	}

	found, err := extractVersion(out)
	if err != nil {
		return err
	}
	minimum, err := goversion.NewVersion(tool.MinVersion)
	if err != nil {
		return fmt.Errorf("invalid minimum version %q: %w", tool.MinVersion, err)
	}
	if found.LessThan(minimum) {
		return fmt.Errorf("version %s is older than required %s", found, minimum)
	}
	return nil
}

var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

func extractVersion(out string) (*goversion.Version, error) {
	match := versionPattern.FindString(out)
	if match == "" {
		return nil, fmt.Errorf("no version found in output %q", strings.TrimSpace(out))
	}
	return goversion.NewVersion(match)
}
