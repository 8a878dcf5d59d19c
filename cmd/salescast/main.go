package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/soltixdb/salescast/internal/compression"
	"github.com/soltixdb/salescast/internal/config"
	"github.com/soltixdb/salescast/internal/logging"
	"github.com/soltixdb/salescast/internal/queue"
	"github.com/soltixdb/salescast/internal/report"
	"github.com/soltixdb/salescast/internal/services"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", services.ErrorKind(err), err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to configuration file")
	input := flag.String("input", "", "Input CSV or XLSX file")
	column := flag.String("column", "", "Column to forecast")
	dateColumn := flag.String("date-column", "", "Date column used for aggregation")
	freq := flag.String("freq", "", "Aggregation frequency (D, W, M); empty forecasts raw rows")
	method := flag.String("method", "", "Forecast method (exponential, sma, linear)")
	periods := flag.Int("periods", 0, "Number of periods to forecast")
	alpha := flag.Float64("alpha", 0, "Smoothing factor in (0,1]")
	testSize := flag.Float64("test-size", 0, "Fraction of data held out for testing")
	output := flag.String("output", "", "Report output path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// Only flags given on the command line override the configuration
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Dataset.InputPath = *input
		case "column":
			cfg.Dataset.ValueColumn = *column
		case "date-column":
			cfg.Dataset.DateColumn = *dateColumn
		case "freq":
			cfg.Dataset.Frequency = *freq
		case "method":
			cfg.Forecast.Method = *method
		case "periods":
			cfg.Forecast.Periods = *periods
		case "alpha":
			cfg.Forecast.Alpha = *alpha
		case "test-size":
			cfg.Forecast.TestSize = *testSize
		case "output":
			cfg.Report.OutputDir = ""
			cfg.Report.Filename = *output
		}
	})

	logger, err := logging.NewFromConfig(cfg.CLILogging())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logging.SetGlobal(logger)

	publisher, err := queue.NewPublisher(cfg.Queue)
	if err != nil {
		return fmt.Errorf("failed to connect to queue: %w", err)
	}
	defer func() { _ = publisher.Close() }()

	compressor, err := compression.ByName(cfg.Queue.Compression)
	if err != nil {
		return err
	}

	forecasts := services.NewForecastService(logger,
		services.WithPublisher(publisher, cfg.Queue.Subject, compressor))
	pipeline := services.NewPipelineService(logger, forecasts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRunID(ctx, uuid.New().String())

	logger.Info("Pipeline starting", "version", Version, "commit", GitCommit, "input", cfg.Dataset.InputPath)
	report.Banner(os.Stdout)

	result, err := pipeline.Run(ctx, services.PipelineRequest{
		InputPath:      cfg.Dataset.InputPath,
		DateColumn:     cfg.Dataset.DateColumn,
		ValueColumn:    cfg.Dataset.ValueColumn,
		Frequency:      cfg.Dataset.Frequency,
		FillMethod:     cfg.Dataset.FillMethod,
		DropDuplicates: cfg.Dataset.DropDuplicates,
		Method:         cfg.Forecast.Method,
		Periods:        cfg.Forecast.Periods,
		Config:         cfg.Forecast.ModelConfig(),
		ReportPath:     cfg.GetReportPath(),
	})
	if err != nil {
		return err
	}

	printResult(os.Stdout, result)
	return nil
}

func printResult(w io.Writer, r *services.PipelineResult) {
	fmt.Fprintf(w, "\nData Shape: %s\n", r.Summary.Shape)
	fmt.Fprintf(w, "Duplicates removed: %d, cells filled: %d\n", r.Duplicates, r.Filled)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\ncolumn\ttype\tmissing")
	for _, c := range r.Summary.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c, r.Summary.Types[c], r.Summary.Missing[c])
	}
	_ = tw.Flush()

	names := make([]string, 0, len(r.Statistics))
	for name := range r.Statistics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(tw, "\nStatistics\tcount\tmean\tmedian\tstd\tmin\tmax")
	for _, name := range names {
		s := r.Statistics[name]
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			name, s.Count, s.Mean, s.Median, s.Std, s.Min, s.Max)
	}
	_ = tw.Flush()

	if len(r.Correlations.Names) > 0 {
		fmt.Fprint(tw, "\nCorrelations")
		for _, name := range r.Correlations.Names {
			fmt.Fprintf(tw, "\t%s", name)
		}
		fmt.Fprintln(tw)
		for i, name := range r.Correlations.Names {
			fmt.Fprint(tw, name)
			for _, v := range r.Correlations.Values[i] {
				fmt.Fprintf(tw, "\t%.3f", v)
			}
			fmt.Fprintln(tw)
		}
		_ = tw.Flush()
	}

	f := r.Forecast
	fmt.Fprintf(w, "\nForecast (%s, %d periods): %s\n", f.Method, f.Periods, report.FormatValues(f.Forecast))
	if f.Evaluation != nil {
		fmt.Fprintf(w, "Backtest on %d held-out values: RMSE %.4f, MAE %.4f\n",
			f.TestSize, f.Evaluation.RMSE, f.Evaluation.MAE)
	}
	if r.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d missing values before forecasting\n", r.Skipped)
	}
	if r.ReportPath != "" {
		fmt.Fprintf(w, "Report saved to %s\n", r.ReportPath)
	}
	fmt.Fprintf(w, "Completed in %s\n", r.Duration)
}
