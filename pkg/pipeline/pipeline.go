// Package pipeline runs one generation end to end: account pool, sampling,
// graph projection and output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dd0wney/cluso-fraudgen/pkg/accounts"
	"github.com/dd0wney/cluso-fraudgen/pkg/config"
	"github.com/dd0wney/cluso-fraudgen/pkg/dataset"
	"github.com/dd0wney/cluso-fraudgen/pkg/generator"
	"github.com/dd0wney/cluso-fraudgen/pkg/graph"
	"github.com/dd0wney/cluso-fraudgen/pkg/logging"
	"github.com/dd0wney/cluso-fraudgen/pkg/metrics"
	"github.com/dd0wney/cluso-fraudgen/pkg/sink"
	"github.com/google/uuid"
)

// Stage names used in logs and the stage duration metric.
const (
	StageValidate = "validate"
	StageAccounts = "accounts"
	StageSample   = "sample"
	StageProject  = "project"
	StageWrite    = "write"
	StageManifest = "manifest"
)

// ErrNoSinks is returned when Run is given nowhere to write.
var ErrNoSinks = errors.New("no sinks configured")

// Deps are the collaborators of a run. Only Sinks is required.
type Deps struct {
	Sinks   []sink.Sink
	Logger  logging.Logger
	Metrics *metrics.Registry
	// RunID labels logs and the manifest; a random UUID when empty.
	RunID string
	Now   func() time.Time
}

// Result is everything a run produced.
type Result struct {
	RunID        string
	Seed         uint64
	Accounts     []string
	Transactions []dataset.Transaction
	Edges        []dataset.Edge
	Nodes        []dataset.Node
	Stats        graph.Stats
	FraudCount   int
	// ManifestPath is empty unless a manifest was written.
	ManifestPath string
	Duration     time.Duration
}

// Tables renders the three output tables in write order.
func (r *Result) Tables() []sink.Table {
	return []sink.Table{
		{Name: dataset.TransactionsTable, Header: dataset.TransactionHeader(), Rows: dataset.TransactionRecords(r.Transactions)},
		{Name: dataset.EdgesTable, Header: dataset.EdgeHeader(), Rows: dataset.EdgeRecords(r.Edges)},
		{Name: dataset.NodesTable, Header: dataset.NodeHeader(), Rows: dataset.NodeRecords(r.Nodes)},
	}
}

// Generate builds the pool, samples the transactions and projects the graph
// without touching any sink. Equal configurations give equal results.
func Generate(cfg *config.Config) (*Result, error) {
	d := Deps{}.withDefaults()
	return d.generate(context.Background(), d.Logger, cfg)
}

// Run validates cfg, generates the dataset and writes the transactions,
// edges and nodes tables to every sink in that order. Nothing is written
// when generation fails. Cancellation of ctx is checked between stages.
func Run(ctx context.Context, cfg *config.Config, deps Deps) (*Result, error) {
	deps = deps.withDefaults()
	start := deps.Now()
	log := deps.Logger.With(logging.RunID(deps.RunID))

	if len(deps.Sinks) == 0 {
		return nil, ErrNoSinks
	}

	timer := deps.startStage(log, StageValidate)
	if err := cfg.Validate(); err != nil {
		timer.fail(err)
		return nil, err
	}
	timer.done()

	log.Info("generation started",
		logging.Seed(cfg.Seed),
		logging.Int("accounts", cfg.Accounts),
		logging.Int("transactions", cfg.Transactions),
		logging.Float64("fraud_ratio", cfg.FraudRatio),
	)

	res, err := deps.generate(ctx, log, cfg)
	if err != nil {
		return nil, err
	}
	res.RunID = deps.RunID

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timer = deps.startStage(log, StageWrite)
	dir, err := deps.write(ctx, log, res)
	if err != nil {
		timer.fail(err)
		return nil, err
	}
	timer.done()

	if cfg.Output.Manifest {
		timer = deps.startStage(log, StageManifest)
		path, err := writeManifest(cfg, res, dir, start)
		if err != nil {
			timer.fail(err)
			return nil, err
		}
		if path == "" {
			log.Warn("manifest requested but no directory sink is configured")
		}
		res.ManifestPath = path
		timer.done(logging.Path(path))
	}

	if cfg.Output.MetricsFile != "" {
		if err := deps.Metrics.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			log.Error("metrics textfile not written", logging.Error(err), logging.Path(cfg.Output.MetricsFile))
			return nil, err
		}
	}

	res.Duration = deps.Now().Sub(start)
	log.Info("generation finished",
		logging.Rows(len(res.Transactions)),
		logging.Int("fraud", res.FraudCount),
		logging.Int("nodes", res.Stats.Nodes),
		logging.Duration("duration", res.Duration),
	)
	return res, nil
}

func (d Deps) generate(ctx context.Context, log logging.Logger, cfg *config.Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timer := d.startStage(log, StageAccounts)
	pool, err := accounts.Pool(cfg.Accounts)
	if err != nil {
		timer.fail(err)
		return nil, err
	}
	d.Metrics.SetAccounts(len(pool))
	timer.done(logging.Rows(len(pool)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timer = d.startStage(log, StageSample)
	sampler, err := generator.New(generator.NewRNG(cfg.Seed), cfg.GeneratorOptions())
	if err != nil {
		timer.fail(err)
		return nil, err
	}
	txs, err := sampler.Generate(pool, cfg.Transactions, cfg.FraudRatio)
	if err != nil {
		timer.fail(err)
		return nil, err
	}
	fraud := 0
	for _, tx := range txs {
		if tx.Fraudulent() {
			fraud++
		}
		d.Metrics.RecordTransaction(tx.Fraudulent(), tx.Amount.InexactFloat64())
	}
	timer.done(logging.Rows(len(txs)), logging.Int("fraud", fraud))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timer = d.startStage(log, StageProject)
	edges, nodes := graph.Project(txs)
	stats := graph.Summarize(edges, nodes)
	d.Metrics.SetGraphSize(stats.Nodes, stats.Edges)
	timer.done(logging.Int("nodes", stats.Nodes), logging.Int("edges", stats.Edges))

	return &Result{
		Seed:         cfg.Seed,
		Accounts:     pool,
		Transactions: txs,
		Edges:        edges,
		Nodes:        nodes,
		Stats:        stats,
		FraudCount:   fraud,
	}, nil
}

// write sends every table to every sink and returns the directory sink, if any.
func (d Deps) write(ctx context.Context, log logging.Logger, res *Result) (*sink.DirSink, error) {
	var dir *sink.DirSink
	for _, s := range d.Sinks {
		if ds, ok := s.(*sink.DirSink); ok && dir == nil {
			dir = ds
		}
	}

	multi := sink.NewMulti(d.Sinks...)
	multi.Observe(func(name string, t sink.Table, err error) {
		d.Metrics.RecordTableWrite(name, t.Name, len(t.Rows), err)
		if err != nil {
			log.Error("table write failed", logging.Sink(name), logging.Table(t.Name), logging.Error(err))
			return
		}
		log.Debug("table written", logging.Sink(name), logging.Table(t.Name), logging.Rows(len(t.Rows)))
	})

	for _, t := range res.Tables() {
		if err := multi.Write(ctx, t); err != nil {
			return nil, fmt.Errorf("write %s: %w", t.Name, err)
		}
	}
	return dir, nil
}

func writeManifest(cfg *config.Config, res *Result, dir *sink.DirSink, created time.Time) (string, error) {
	if dir == nil {
		return "", nil
	}
	m := &sink.Manifest{
		RunID:        res.RunID,
		CreatedAt:    created.UTC(),
		Seed:         cfg.Seed,
		Accounts:     cfg.Accounts,
		Transactions: cfg.Transactions,
		FraudRatio:   cfg.FraudRatio,
		Compression:  cfg.Output.Compression,
	}
	for _, t := range res.Tables() {
		path, ok := dir.Path(t.Name)
		if !ok {
			return "", fmt.Errorf("manifest: table %s was not written", t.Name)
		}
		if err := m.Add(t.Name, path, len(t.Rows)); err != nil {
			return "", fmt.Errorf("manifest: %w", err)
		}
	}
	path := filepath.Join(dir.Dir(), sink.ManifestFile)
	if err := m.WriteFile(path); err != nil {
		return "", err
	}
	return path, nil
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = logging.NewNopLogger()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.NewRegistry()
	}
	if d.RunID == "" {
		d.RunID = uuid.NewString()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

type stageTimer struct {
	deps  Deps
	stage string
	op    *logging.TimedOperation
}

func (d Deps) startStage(log logging.Logger, stage string) *stageTimer {
	return &stageTimer{
		deps:  d,
		stage: stage,
		op:    logging.StartTimer(log, "stage finished", logging.Stage(stage)),
	}
}

func (s *stageTimer) done(fields ...logging.Field) {
	s.deps.Metrics.RecordStage(s.stage, s.op.End(fields...))
}

func (s *stageTimer) fail(err error) {
	s.deps.Metrics.RecordStage(s.stage, s.op.EndError(err))
}
