// Package orchestration drives one generation session through the repair
// state machine: Generating → Validating → Fixing → Building → Done|Failed.
//
// A session exclusively owns its file set, attempt log, and cycle counter.
// Independent sessions share nothing, so any number may run in parallel.
package orchestration

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"webwright/pkg/boilerplate"
	"webwright/pkg/buildcheck"
	"webwright/pkg/config"
	"webwright/pkg/filesystem"
	"webwright/pkg/fix"
	"webwright/pkg/llm"
	"webwright/pkg/parser"
	"webwright/pkg/prompts"
	"webwright/pkg/types"
	"webwright/pkg/utils"
	"webwright/pkg/validation"
)

// State is the repair state machine's current phase.
type State string

const (
	StateGenerating State = "generating"
	StateValidating State = "validating"
	StateFixing     State = "fixing"
	StateBuilding   State = "building"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// ErrNoFilesGenerated is returned when every generation task's output was
// unparseable.
var ErrNoFilesGenerated = errors.New("no generation task produced usable files")

// Session runs one generation request end to end.
type Session struct {
	ID string

	cfg        *config.Config
	client     llm.TaskClient
	builder    buildcheck.Runner
	validators []validation.Validator
	fixers     *fix.Registry
	logger     *utils.Logger

	state      State
	fileSet    *types.FileSet
	attempts   []types.RepairAttempt
	unresolved []types.ValidationIssue
	cyclesUsed int

	// written records every path this session has materialized, across
	// cycles. The stale-file sweep is confined to it so pre-existing files
	// in the target directory are never deleted.
	written map[string]bool
}

// Result is what a finished session hands back to the caller.
type Result struct {
	State State
	// Attempts is the append-only cycle log, ordered.
	Attempts []types.RepairAttempt
	// Unresolved lists the issues that forced a Failed state, if any.
	Unresolved []types.ValidationIssue
	FileSet    *types.FileSet
}

// NewSession wires a session from configuration. client may be nil when the
// session will only repair an existing file set.
func NewSession(cfg *config.Config, client llm.TaskClient, builder buildcheck.Runner) (*Session, error) {
	manifest, err := boilerplate.Load()
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:         uuid.NewString(),
		cfg:        cfg,
		client:     client,
		builder:    builder,
		validators: validation.DefaultValidators(manifest.RequiredPaths()),
		fixers:     fix.NewRegistry(manifest),
		logger:     utils.GetLogger(),
		fileSet:    types.NewFileSet(),
		written:    make(map[string]bool),
	}, nil
}

// Generate runs the full pipeline for a natural-language requirement:
// task generation, parsing, materialization, and the repair loop.
func (s *Session) Generate(ctx context.Context, requirement, targetDir string) (*Result, error) {
	if err := s.transition(ctx, StateGenerating); err != nil {
		return nil, err
	}

	tasksSucceeded := 0
	for _, task := range PlanTasks(requirement) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logger.LogProcessStep(fmt.Sprintf("🧠 Generating %s...", task.Area))

		raw, err := s.client.Complete(ctx, prompts.BuildGenerationMessages(requirement, task.Area, s.fileSet.Paths()))
		if err != nil {
			return nil, fmt.Errorf("generation task %q failed: %w", task.Area, err)
		}

		taskSet, anomalies, err := parser.ParseTaskResponse(raw)
		if err != nil {
			// Fatal for this task, not the session.
			s.logger.LogError(fmt.Errorf("task %q output unparseable: %w", task.Area, err))
			continue
		}
		for _, a := range anomalies {
			s.logger.Logf("Task %q anomaly: path=%s %s", task.Area, a.Path, a.Detail)
		}

		s.fileSet.Merge(taskSet)
		tasksSucceeded++
	}

	if tasksSucceeded == 0 {
		return nil, ErrNoFilesGenerated
	}
	return s.Repair(ctx, targetDir)
}

// RepairFileSet repairs a caller-supplied file set instead of generating
// one. Used by the validate command and anywhere a set already exists.
func (s *Session) RepairFileSet(ctx context.Context, set *types.FileSet, targetDir string) (*Result, error) {
	s.fileSet = set
	return s.Repair(ctx, targetDir)
}

// Inspect runs the validators once over a caller-supplied file set without
// touching the files or the disk. The issues land in Result.Unresolved.
func (s *Session) Inspect(ctx context.Context, set *types.FileSet) (*Result, error) {
	s.fileSet = set
	if err := s.transition(ctx, StateValidating); err != nil {
		return nil, err
	}
	issues := validation.RunAll(ctx, s.fileSet, s.validators)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(issues) == 0 {
		return s.finish(StateDone), nil
	}
	s.unresolved = issues
	return s.finish(StateFailed), nil
}

// Repair runs the validate→fix and build→fix loops over the session's file
// set until the build succeeds, an issue proves irreparable, or the cycle
// budget is exhausted. The budget is shared across both loops.
func (s *Session) Repair(ctx context.Context, targetDir string) (*Result, error) {
	if err := s.materialize(targetDir); err != nil {
		return nil, fmt.Errorf("could not materialize file set: %w", err)
	}

	for s.cyclesUsed < s.cfg.MaxCycles {
		if err := s.transition(ctx, StateValidating); err != nil {
			return nil, err
		}
		issues := validation.RunAll(ctx, s.fileSet, s.validators)

		if len(issues) > 0 {
			if err := s.transition(ctx, StateFixing); err != nil {
				return nil, err
			}
			attempt := s.runFixers(issues)
			s.attempts = append(s.attempts, attempt)

			if attempt.IssuesFixed == 0 {
				// Nothing moved; looping again would find the same issues.
				s.unresolved = attempt.Unresolved
				return s.finish(StateFailed), nil
			}
			if err := s.materialize(targetDir); err != nil {
				return nil, fmt.Errorf("could not rematerialize file set: %w", err)
			}
			continue
		}

		if s.builder == nil {
			// No build runner configured; a clean validation pass is the
			// terminal success condition.
			return s.finish(StateDone), nil
		}

		if err := s.transition(ctx, StateBuilding); err != nil {
			return nil, err
		}
		buildResult, err := s.builder.Build(ctx, targetDir)
		if err != nil {
			return nil, err
		}
		if buildResult.Success {
			s.attempts = append(s.attempts, types.RepairAttempt{
				Cycle:          s.cyclesUsed,
				BuildAttempted: true,
				BuildSucceeded: true,
			})
			return s.finish(StateDone), nil
		}

		synthesized := fixableIssues(buildResult)
		buildAttempt := types.RepairAttempt{
			Cycle:          s.cyclesUsed,
			BuildAttempted: true,
			BuildErrors:    buildResult.Errors,
		}
		if len(synthesized) == 0 {
			// No classified error has a fixer; record the raw errors
			// verbatim and stop.
			s.attempts = append(s.attempts, buildAttempt)
			s.unresolved = buildcheck.SynthesizeIssues(buildResult)
			return s.finish(StateFailed), nil
		}

		if err := s.transition(ctx, StateFixing); err != nil {
			return nil, err
		}
		attempt := s.runFixers(synthesized)
		attempt.BuildAttempted = true
		attempt.BuildErrors = buildResult.Errors
		s.attempts = append(s.attempts, attempt)

		if attempt.IssuesFixed == 0 {
			s.unresolved = attempt.Unresolved
			return s.finish(StateFailed), nil
		}
		if err := s.materialize(targetDir); err != nil {
			return nil, fmt.Errorf("could not rematerialize file set: %w", err)
		}
	}

	s.logger.LogProcessStep(fmt.Sprintf("🛑 Session %s exhausted its %d-cycle budget", s.ID, s.cfg.MaxCycles))
	return s.finish(StateFailed), nil
}

// runFixers applies the matching fixer to every issue, sequentially: later
// fixers may depend on files rewritten by earlier ones. Consumes one cycle
// from the shared budget.
func (s *Session) runFixers(issues []types.ValidationIssue) types.RepairAttempt {
	s.cyclesUsed++
	attempt := types.RepairAttempt{
		Cycle:       s.cyclesUsed,
		IssuesFound: issues,
	}

	for _, issue := range issues {
		outcome, err := s.fixers.Apply(s.fileSet, issue)
		if err != nil {
			s.logger.LogError(fmt.Errorf("fixer for %s on %s: %w", issue.Kind, issue.FilePath, err))
			attempt.Unresolved = append(attempt.Unresolved, issue)
			continue
		}
		if outcome.Fixed {
			attempt.IssuesFixed++
		}
		if outcome.Diff != "" {
			attempt.FixDiffs = append(attempt.FixDiffs, outcome.Diff)
		}
		s.logger.LogRepairOutcome(string(issue.Kind), issue.FilePath, outcome.Detail)
	}

	s.logger.LogProcessStep(fmt.Sprintf("🔧 Cycle %d: fixed %d of %d issue(s)",
		attempt.Cycle, attempt.IssuesFixed, len(attempt.IssuesFound)))
	return attempt
}

func (s *Session) materialize(targetDir string) error {
	if err := filesystem.MaterializeSet(s.fileSet, targetDir); err != nil {
		return err
	}
	for _, p := range s.fileSet.Paths() {
		s.written[p] = true
	}
	return filesystem.SweepStale(s.fileSet, s.written, targetDir)
}

// transition moves the state machine, honoring cancellation at every edge.
// An in-flight external call is not interrupted, but its result is discarded
// because the next transition fails.
func (s *Session) transition(ctx context.Context, next State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = next
	s.logger.Logf("Session %s: state=%s cycle=%d/%d", s.ID, next, s.cyclesUsed, s.cfg.MaxCycles)
	return nil
}

func (s *Session) finish(terminal State) *Result {
	s.state = terminal
	return &Result{
		State:      terminal,
		Attempts:   s.attempts,
		Unresolved: s.unresolved,
		FileSet:    s.fileSet,
	}
}

// fixableIssues synthesizes issues from a failed build, keeping only those
// whose signature has a fixer mapping.
func fixableIssues(result types.BuildResult) []types.ValidationIssue {
	var fixable []types.ValidationIssue
	for _, issue := range buildcheck.SynthesizeIssues(result) {
		if fix.FixableSignature(issue.SignatureID) {
			fixable = append(fixable, issue)
		}
	}
	return fixable
}
