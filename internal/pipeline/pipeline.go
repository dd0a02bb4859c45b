// Package pipeline turns per-city fleet spreadsheet exports into the Output
// Table: load, normalize, concatenate, derive zone fields, append facilities.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/config"
	"github.com/sells-group/fleet-cli/internal/export"
	"github.com/sells-group/fleet-cli/internal/model"
	"github.com/sells-group/fleet-cli/internal/normalize"
	"github.com/sells-group/fleet-cli/internal/parallel"
	"github.com/sells-group/fleet-cli/internal/runlog"
	"github.com/sells-group/fleet-cli/internal/sheet"
	"github.com/sells-group/fleet-cli/internal/zone"
)

// Options configures a Pipeline.
type Options struct {
	Sources    []config.SourceConfig
	Pattern    string
	Columns    []int
	Workers    int
	Duration   normalize.DurationOptions
	Dates      normalize.DateOptions
	Facilities []string
	OutputCSV  string
}

// OptionsFromConfig builds Options from the application config.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	cols, err := sheet.ParseColumnSpec(cfg.Ingest.Columns)
	if err != nil {
		return Options{}, eris.Wrap(err, "pipeline: ingest.columns")
	}
	return Options{
		Sources:    cfg.Sources,
		Pattern:    cfg.Ingest.Pattern,
		Columns:    cols,
		Workers:    cfg.Ingest.Workers,
		Duration:   normalize.DurationOptions{IncludeSeconds: cfg.Ingest.DurationSeconds},
		Dates:      normalize.DateOptions{Layouts: cfg.Ingest.TimeLayouts, Strict: cfg.Ingest.StrictDates},
		Facilities: cfg.Facilities,
		OutputCSV:  cfg.Output.CSV,
	}, nil
}

// Pipeline runs the ingestion stages.
type Pipeline struct {
	opts Options
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// source carries one source directory through the stages.
type source struct {
	cfg   config.SourceConfig
	files []string
	sets  []model.RecordSet
}

// Run builds the Output Table and writes it to the configured CSV path.
func (p *Pipeline) Run(ctx context.Context, run *runlog.Run) (*model.Table, error) {
	tbl, err := p.Build(ctx, run)
	if err != nil {
		return nil, err
	}

	err = run.Track("output written", func() error {
		return export.WriteTable(p.opts.OutputCSV, tbl)
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: write output")
	}

	run.Logger().Info("pipeline: output table written",
		zap.String("path", p.opts.OutputCSV),
		zap.Int("rows", tbl.Len()),
		zap.Int("columns", len(tbl.Columns)),
	)
	return tbl, nil
}

// Build runs every stage except writing the CSV.
func (p *Pipeline) Build(ctx context.Context, run *runlog.Run) (*model.Table, error) {
	log := run.Logger()
	sources := make([]*source, len(p.opts.Sources))
	for i, sc := range p.opts.Sources {
		sources[i] = &source{cfg: sc}
	}

	err := run.Track("list of file paths created", func() error {
		for _, s := range sources {
			files, err := sheet.Discover(s.cfg.Dir, p.opts.Pattern)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				log.Warn("pipeline: no spreadsheets found",
					zap.String("source", s.cfg.Label),
					zap.String("dir", s.cfg.Dir),
					zap.String("pattern", p.opts.Pattern),
				)
			}
			s.files = files
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: list files")
	}

	err = run.Track("list of record sets created", func() error {
		for _, s := range sources {
			sets, err := parallel.Map(ctx, p.opts.Workers, s.files, func(_ context.Context, path string) (model.RecordSet, error) {
				return sheet.LoadRecordSet(path, p.opts.Columns)
			})
			if err != nil {
				return eris.Wrapf(err, "source %s", s.cfg.Label)
			}
			s.sets = sets
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load spreadsheets")
	}

	err = run.Track("duration converted to hours", func() error {
		for _, s := range sources {
			sets, err := parallel.MapPure(ctx, p.opts.Workers, s.sets, func(set model.RecordSet) model.RecordSet {
				return normalize.ParseDurations(set, p.opts.Duration)
			})
			if err != nil {
				return eris.Wrapf(err, "source %s", s.cfg.Label)
			}
			s.sets = sets
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: parse durations")
	}

	err = run.Track("dates parsed", func() error {
		for _, s := range sources {
			sets, err := parallel.Map(ctx, p.opts.Workers, s.sets, func(_ context.Context, set model.RecordSet) (model.RecordSet, error) {
				return normalize.ParseDates(set, p.opts.Dates)
			})
			if err != nil {
				return eris.Wrapf(err, "source %s", s.cfg.Label)
			}
			s.sets = sets
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: parse dates")
	}

	var tbl *model.Table
	run.Step("record sets concatenated", func() {
		parts := make([]SourceTable, len(sources))
		for i, s := range sources {
			parts[i] = Concat(s.cfg.Label, s.sets)
			log.Info("pipeline: source concatenated",
				zap.String("source", s.cfg.Label),
				zap.Int("files", len(s.files)),
				zap.Int("trips", len(parts[i].Trips)),
			)
		}
		tbl = Union(parts...)
	})

	run.Mark("adding calculated fields", map[string]any{"trips": len(tbl.Trips)})

	run.Step("PK added", func() {
		AssignPathIDs(tbl.Trips)
	})

	run.Step("sub census zone added", func() {
		zone.Assign(tbl.Trips)
	})

	var zones int
	run.Step("crossover added", func() {
		zones = len(zone.Crossover(tbl.Trips))
	})

	run.Mark("calculated fields added", map[string]any{"zones": zones})

	err = run.Track("facilities merged", func() error {
		return MergeFacilities(tbl, p.opts.Facilities)
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: merge facilities")
	}

	return tbl, nil
}
