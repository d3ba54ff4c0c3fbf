package operations

import (
	"context"
	"log/slog"

	"github.com/indaco/depsync/internal/depgraph"
	"github.com/indaco/depsync/internal/manifest"
)

// State is a step of a check run.
type State string

const (
	StateScan         State = "SCAN"
	StateValidate     State = "VALIDATE"
	StateReport       State = "REPORT"
	StateReportAndFix State = "REPORT_AND_FIX"
	StateExit         State = "EXIT"
)

// Exit statuses of a check run.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitFatal  = 2
)

// CheckOptions configures a check run.
type CheckOptions struct {
	// Fix rewrites manifests to resolve violations.
	Fix bool

	// FailOnMissing makes missing internal references fail the run.
	FailOnMissing bool
}

// CheckOperation builds the graph, validates every internal dependency and
// optionally fixes what it finds.
type CheckOperation struct {
	store manifest.Store
	roots []string
	match depgraph.Predicate
	opts  CheckOptions
}

// NewCheckOperation creates a check over the manifests store finds below
// roots. Only dependency names accepted by match are checked.
func NewCheckOperation(store manifest.Store, roots []string, match depgraph.Predicate, opts CheckOptions) *CheckOperation {
	return &CheckOperation{
		store: store,
		roots: roots,
		match: match,
		opts:  opts,
	}
}

// Outcome is the result of a check run.
type Outcome struct {
	// States lists the steps the run went through, in order.
	States []State

	// Graph is the dependency graph the run validated.
	Graph *depgraph.Graph

	// Report holds every check, violation and missing reference.
	Report *depgraph.Report

	// Fix is set when fix mode ran.
	Fix *depgraph.FixResult

	// FailOnMissing mirrors CheckOptions.FailOnMissing.
	FailOnMissing bool
}

// Unresolved returns how many violations are still on disk.
func (o *Outcome) Unresolved() int {
	if o.Report == nil || o.Fix != nil {
		return 0
	}
	return len(o.Report.Violations)
}

// ExitCode maps the outcome to a process exit status.
func (o *Outcome) ExitCode() int {
	if o.Unresolved() > 0 {
		return ExitFailed
	}
	if o.FailOnMissing && o.Report != nil && len(o.Report.Missing) > 0 {
		return ExitFailed
	}
	return ExitOK
}

func (o *Outcome) enter(s State) {
	o.States = append(o.States, s)
	slog.Debug("check state", "state", string(s))
}

// Execute runs the check. Fatal conditions (malformed manifests, duplicate
// names, failed writes) are returned as errors together with the partial
// outcome.
func (op *CheckOperation) Execute(ctx context.Context) (*Outcome, error) {
	out := &Outcome{FailOnMissing: op.opts.FailOnMissing}

	out.enter(StateScan)
	g, err := depgraph.Load(ctx, op.store, op.roots)
	if err != nil {
		return out, err
	}
	out.Graph = g

	out.enter(StateValidate)
	out.Report = depgraph.Scan(g, op.match)

	if !op.opts.Fix {
		out.enter(StateReport)
		out.enter(StateExit)
		return out, nil
	}

	out.enter(StateReportAndFix)
	if out.Report.HasViolations() {
		result, err := depgraph.Fix(ctx, g, out.Report.Violations, op.store)
		if err != nil {
			return out, err
		}
		out.Fix = result
	} else {
		out.Fix = &depgraph.FixResult{}
	}

	out.enter(StateExit)
	return out, nil
}

// Name returns the name of this operation.
func (op *CheckOperation) Name() string {
	if op.opts.Fix {
		return "check --fix"
	}
	return "check"
}
