package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/docgraph-labs/docgraph/internal/docparse"
	"github.com/docgraph-labs/docgraph/internal/graph"
	"github.com/docgraph-labs/docgraph/internal/statement"
)

// Report summarizes one analysis run.
type Report struct {
	RunID          uuid.UUID
	FilesProcessed int
	Entities       int
	Unresolved     []Diagnostic
}

// Runner owns an analysis run: the file queue, the shared processing
// context, and the dispatcher. It is the statement-source side of the
// resolution engine's deferral contract: ReprocessRemaining moves the
// in-flight file to the back of the queue and drains the rest.
type Runner struct {
	parser     *statement.Parser
	registry   *Registry
	graph      *graph.Graph
	resolver   *Resolver
	dispatcher *Dispatcher
	diags      *Diagnostics
	logger     *slog.Logger

	globals map[string]any
	runID   uuid.UUID

	queue     []*statement.File
	parsed    map[string]*statement.File
	inFlight  map[string]bool
	deferrals map[string]int
	files     int
}

// NewRunner wires a complete analysis engine around the given handler
// registry. The resolver's reprocessor is the runner itself.
func NewRunner(reg *Registry, logger *slog.Logger) *Runner {
	g := graph.New()
	diags := &Diagnostics{}
	docs := docparse.NewParser(logger)
	resolver := NewResolver(g, nil, logger)

	r := &Runner{
		parser:    statement.NewParser(),
		registry:  reg,
		graph:     g,
		resolver:  resolver,
		diags:     diags,
		logger:    logger,
		globals:   make(map[string]any),
		runID:     uuid.New(),
		parsed:    make(map[string]*statement.File),
		inFlight:  make(map[string]bool),
		deferrals: make(map[string]int),
	}
	resolver.SetSource(r)
	r.dispatcher = NewDispatcher(reg, g, resolver, docs, diags, logger)
	return r
}

// Graph returns the entity graph built by this run.
func (r *Runner) Graph() *graph.Graph { return r.graph }

// Resolver returns the run's resolution engine, e.g. to adjust MaxRetries.
func (r *Runner) Resolver() *Resolver { return r.resolver }

// Run analyzes the given source files in order and returns the run report.
// Statements are processed strictly sequentially; the only reordering is the
// resolution engine's file deferral.
func (r *Runner) Run(ctx context.Context, paths []string) (*Report, error) {
	r.logger.Info("analysis started",
		slog.String("run_id", r.runID.String()),
		slog.Int("files", len(paths)))

	files := make([]*statement.File, 0, len(paths))
	for _, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		f, err := r.parser.Parse(p, src)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	report, err := r.RunFiles(ctx, files)
	if err != nil {
		return nil, err
	}
	r.logger.Info("analysis complete",
		slog.String("run_id", r.runID.String()),
		slog.Int("files_processed", report.FilesProcessed),
		slog.Int("entities", report.Entities),
		slog.Int("unresolved", len(report.Unresolved)))
	return report, nil
}

// RunFiles analyzes pre-parsed statement files; used by tests and embedders
// that bypass the tree-sitter frontend.
func (r *Runner) RunFiles(ctx context.Context, files []*statement.File) (*Report, error) {
	for _, f := range files {
		r.parsed[f.Path] = f
		r.queue = append(r.queue, f)
	}
	if err := r.drain(ctx); err != nil {
		return nil, err
	}
	return &Report{
		RunID:          r.runID,
		FilesProcessed: r.files,
		Entities:       r.graph.Count(),
		Unresolved:     r.diags.Entries(),
	}, nil
}

// drain processes queued files front to back. A queued copy of a file whose
// processing is still in flight in an enclosing frame is set aside and
// restored to the queue, so the deferred file re-runs after its original
// frame completes.
func (r *Runner) drain(ctx context.Context) error {
	var held []*statement.File
	for len(r.queue) > 0 {
		f := r.queue[0]
		r.queue = r.queue[1:]
		if r.inFlight[f.Path] {
			held = append(held, f)
			continue
		}
		if err := r.processFile(ctx, f); err != nil {
			r.queue = append(held, r.queue...)
			return err
		}
	}
	r.queue = held
	return nil
}

func (r *Runner) processFile(ctx context.Context, f *statement.File) error {
	r.inFlight[f.Path] = true
	defer delete(r.inFlight, f.Path)

	// Every file pass gets a fresh root-level context; only Globals is
	// shared across files. A deferral raised mid-file re-drives the queue,
	// and the files processed during that re-drive must not inherit the
	// deferring file's scope or transient state.
	pc := NewContext(r.graph.Root())
	pc.Globals = r.globals

	r.logger.Debug("processing file", slog.String("file", f.Path))
	if err := r.dispatcher.Process(ctx, f.Statements, pc); err != nil {
		return err
	}
	r.files++
	return nil
}

// ReprocessRemaining implements the resolution engine's deferral: each
// in-flight file moves to the back of the queue for a full re-run, then the
// queue is drained so later-declared definitions get a chance to appear
// before resolution is retried.
//
// A file is re-queued at most once per run; registration is convergent
// (entity creation is idempotent, attachments additive), so the single
// re-run enriches rather than duplicates, and deferral cannot loop.
func (r *Runner) ReprocessRemaining(ctx context.Context) error {
	queued := make(map[string]bool, len(r.queue))
	for _, f := range r.queue {
		queued[f.Path] = true
	}
	for path := range r.inFlight {
		if queued[path] || r.deferrals[path] > 0 {
			continue
		}
		if f := r.parsed[path]; f != nil {
			r.deferrals[path]++
			r.queue = append(r.queue, f)
			r.logger.Debug("file deferred to back of queue", slog.String("file", path))
		}
	}
	return r.drain(ctx)
}
