// Package buildcheck invokes the external build toolchain and classifies
// its failures against known error signatures. It is a thin adapter: the
// only internal logic is signature classification.
package buildcheck

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"webwright/pkg/types"
	"webwright/pkg/utils"
)

// Runner abstracts the external build invocation so the orchestrator and
// tests can substitute their own.
type Runner interface {
	Build(ctx context.Context, dir string) (types.BuildResult, error)
}

// CommandRunner runs a shell build command in the target directory and
// classifies its output.
type CommandRunner struct {
	// Command is the build invocation, run via sh -c.
	Command string
	logger  *utils.Logger
}

// NewCommandRunner creates a runner for the configured build command.
func NewCommandRunner(command string) *CommandRunner {
	return &CommandRunner{Command: command, logger: utils.GetLogger()}
}

// Build executes the build command. A failing build is a normal result, not
// an error; the error return is reserved for being unable to run the
// command at all (cancelled context).
func (r *CommandRunner) Build(ctx context.Context, dir string) (types.BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return types.BuildResult{}, err
	}

	r.logger.LogProcessStep(fmt.Sprintf("🔨 Running build: %s", r.Command))

	command := exec.CommandContext(ctx, "sh", "-c", r.Command)
	command.Dir = dir
	output, err := command.CombinedOutput()
	raw := string(output)

	if err == nil {
		r.logger.LogProcessStep("✅ Build succeeded")
		return types.BuildResult{Success: true, RawOutput: raw}, nil
	}
	if ctx.Err() != nil {
		return types.BuildResult{}, ctx.Err()
	}

	result := types.BuildResult{Success: false, RawOutput: raw}
	result.Errors = ExtractErrors(raw)
	if len(result.Errors) == 0 {
		// Nothing line-shaped to classify; keep the whole output verbatim.
		result.Errors = []types.StructuredBuildError{{Raw: strings.TrimSpace(raw)}}
	}

	r.logger.Logf("Build failed with %d classified error(s): %v", len(result.Errors), err)
	return result, nil
}

// ExtractErrors pulls error lines out of raw build output and classifies
// each against the signature table.
func ExtractErrors(raw string) []types.StructuredBuildError {
	var errs []types.StructuredBuildError
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sigID, _, _ := Classify(line)
		if sigID == "" && !looksLikeError(line) {
			continue
		}
		errs = append(errs, types.StructuredBuildError{Raw: line, SignatureID: sigID})
	}
	return errs
}

// looksLikeError filters build noise from genuine error lines when no
// signature matched.
func looksLikeError(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "error") || strings.Contains(lower, "failed")
}
