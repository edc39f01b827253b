package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/tempplot/internal/loader"
	"github.com/kjstillabower/tempplot/internal/normalize"
	"github.com/kjstillabower/tempplot/internal/observability"
	"github.com/kjstillabower/tempplot/internal/render"
	"github.com/kjstillabower/tempplot/internal/writer"
)

// Pipeline stage names, used as the stage label on plotStageDurationSeconds.
const (
	StageLoad      = "load"
	StageNormalize = "normalize"
	StageRender    = "render"
	StageWrite     = "write"
)

// Result summarizes a successful run.
type Result struct {
	RowCount   int
	First      time.Time
	Last       time.Time
	Bytes      int64
	OutputPath string
}

// PlotService runs the load, normalize, render and write stages in sequence.
type PlotService struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewPlotService creates a PlotService. A nil logger disables logging.
func NewPlotService(logger *zap.Logger) *PlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlotService{logger: logger, now: time.Now}
}

// Run renders the CSV at inputPath to a PNG at outputPath. The first error aborts the run;
// a failed run never leaves a new file at outputPath. ctx is only checked before starting.
func (s *PlotService) Run(ctx context.Context, inputPath, outputPath string) (Result, error) {
	res, err := s.run(ctx, inputPath, outputPath)
	if err != nil {
		category := CategorizeError(err)
		observability.RecordRunFailure(string(category))
		s.logger.Error("plot run failed",
			zap.String("category", string(category)),
			zap.String("input", inputPath),
			zap.String("output", outputPath),
			zap.Error(err))
		return Result{}, err
	}
	observability.RecordRunSuccess(s.now())
	s.logger.Info("plot written",
		zap.String("output", res.OutputPath),
		zap.Int("rows", res.RowCount),
		zap.Time("first", res.First),
		zap.Time("last", res.Last),
		zap.Int64("bytes", res.Bytes))
	return res, nil
}

func (s *PlotService) run(ctx context.Context, inputPath, outputPath string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := s.stage(StageLoad)
	df, err := loader.Load(inputPath)
	s.done(StageLoad, start)
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", inputPath, err)
	}
	observability.PlotRowsLoaded.Set(float64(df.Nrow()))
	s.logger.Debug("csv loaded", zap.Int("rows", df.Nrow()), zap.Strings("columns", df.Names()))

	start = s.stage(StageNormalize)
	series, err := normalize.Normalize(df)
	s.done(StageNormalize, start)
	if err != nil {
		return Result{}, fmt.Errorf("normalize %s: %w", inputPath, err)
	}

	start = s.stage(StageRender)
	fig, err := render.NewFigure(series)
	s.done(StageRender, start)
	if err != nil {
		return Result{}, fmt.Errorf("render: %w", err)
	}
	defer fig.Close()

	start = s.stage(StageWrite)
	n, err := writer.Save(fig, outputPath)
	s.done(StageWrite, start)
	if err != nil {
		return Result{}, fmt.Errorf("write %s: %w", outputPath, err)
	}
	observability.PlotOutputBytes.Set(float64(n))

	first, last := series.Span()
	return Result{
		RowCount:   series.Len(),
		First:      first,
		Last:       last,
		Bytes:      n,
		OutputPath: outputPath,
	}, nil
}

func (s *PlotService) stage(name string) time.Time {
	s.logger.Debug("stage started", zap.String("stage", name))
	return time.Now()
}

func (s *PlotService) done(name string, start time.Time) {
	d := time.Since(start)
	observability.ObserveStage(name, d)
	s.logger.Debug("stage finished", zap.String("stage", name), zap.Duration("duration", d))
}
