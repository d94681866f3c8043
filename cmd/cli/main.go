package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"playpulse/adapters/excel"
	"playpulse/adapters/ingest"
	"playpulse/app"
	"playpulse/domain/stats"
	"playpulse/internal/analytics"
	"playpulse/internal/config"
	"playpulse/internal/errors"
	"playpulse/internal/report"
	"playpulse/internal/testkit"
	"playpulse/ports"
)

// dataFlags are shared by every command that analyzes a dataset
type dataFlags struct {
	appsFile    string
	reviewsFile string
	sheet       string
	synthetic   bool
	seed        int64
	topN        int
	popular     int64
}

// loadEnv applies .env style files to the process environment. Variables
// already set win. It reports whether the files were read.
func loadEnv(files ...string) bool {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found, using system environment variables")
		return false
	}
	return true
}

func main() {
	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	flags := &dataFlags{}

	rootCmd := &cobra.Command{
		Use:           "playpulse",
		Short:         "Play-store analytics from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.appsFile, "apps", cfg.Data.AppsFile, "Apps CSV or XLSX file (APPS_FILE)")
	pf.StringVar(&flags.reviewsFile, "reviews", cfg.Data.ReviewsFile, "Reviews CSV or XLSX file (REVIEWS_FILE)")
	pf.StringVar(&flags.sheet, "sheet", cfg.Data.SheetName, "Sheet to read from XLSX files")
	pf.BoolVar(&flags.synthetic, "synthetic", false, "Analyze a generated dataset instead of files")
	pf.Int64Var(&flags.seed, "seed", 42, "Seed for --synthetic")
	pf.IntVar(&flags.topN, "top", cfg.Analytics.TopN, "Entries kept in ranked outputs")
	pf.Int64Var(&flags.popular, "popular-installs", cfg.Analytics.PopularInstallThreshold, "Installs at or above which an app is popular")

	rootCmd.AddCommand(
		newSummarizeCmd(),
		newDashboardCmd(flags),
		newCategoriesCmd(flags),
		newMarketShareCmd(flags),
		newFrequencyCmd(flags),
		newOutliersCmd(flags),
		newTrendCmd(),
		newReportCmd(flags, cfg.Reports.Dir),
		newGenerateCmd(),
	)
	return rootCmd
}

func newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize [numbers...]",
		Short: "Descriptive statistics of the given numbers",
		Long: `Summarize a numeric sample. Arguments that are not numbers count as missing.

Example: playpulse summarize 4.1 3.9 nan 4.7 4.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]float64, len(args))
			for i, a := range args {
				v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
				if err != nil {
					v = math.NaN()
				}
				values[i] = v
			}
			return printJSON(cmd, analytics.Summarize(values))
		},
	}
}

func newDashboardCmd(flags *dataFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Compute every dashboard section",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDashboard(cmd.Context(), flags)
			if err != nil {
				return err
			}
			return printJSON(cmd, d)
		},
	}
}

func newCategoriesCmd(flags *dataFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Per-category performance",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(cmd.Context(), flags)
			if err != nil {
				return err
			}
			records, _, _ := svc.Data()
			return printJSON(cmd, analytics.AnalyzeCategoryPerformance(records))
		},
	}
}

func newMarketShareCmd(flags *dataFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "market-share",
		Short: "App and install share of every category",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(cmd.Context(), flags)
			if err != nil {
				return err
			}
			records, _, _ := svc.Data()
			return printJSON(cmd, analytics.CalculateMarketShare(records))
		},
	}
}

func newFrequencyCmd(flags *dataFlags) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "frequency",
		Short: "Most frequent values of a categorical field",
		Long: `Rank the values of a categorical field.

Fields: category, contentRating, genres, type

Example: playpulse frequency --field contentRating --top 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(cmd.Context(), flags)
			if err != nil {
				return err
			}
			records, _, _ := svc.Data()
			values, ok := analytics.CategoricalValues(records, field)
			if !ok {
				return errors.InvalidInput(fmt.Sprintf("unknown categorical field %q", field))
			}
			return printJSON(cmd, analytics.AnalyzeFrequency(values, flags.topN))
		},
	}

	cmd.Flags().StringVar(&field, "field", "category", "Categorical field to rank")
	return cmd
}

func newOutliersCmd(flags *dataFlags) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "outliers",
		Short: "Tukey-fence outliers of a numeric field",
		Long: `Detect outliers of a numeric field.

Fields: rating, installs, reviews, price, size`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(cmd.Context(), flags)
			if err != nil {
				return err
			}
			records, _, _ := svc.Data()
			values, ok := analytics.ColumnValues(records, field)
			if !ok {
				return errors.InvalidInput(fmt.Sprintf("unknown numeric field %q", field))
			}
			return printJSON(cmd, analytics.DetectOutliers(values))
		},
	}

	cmd.Flags().StringVar(&field, "field", "rating", "Numeric field to inspect")
	return cmd
}

func newTrendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend [series.csv]",
		Short: "Fit a linear trend to a date,value CSV",
		Long: `Fit a least-squares trend to a time series. The CSV needs a header row
with "date" and "value" columns. Unparseable rows are ignored.

Example: playpulse trend ratings_by_month.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := readSeries(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, analytics.AnalyzeTrend(points))
		},
	}
}

func newReportCmd(flags *dataFlags, defaultDir string) *cobra.Command {
	var reportType, format, outDir string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report file",
		Long: `Generate a report and write it to the report directory.

Types: overview, category, sentiment, trends
Formats: json, csv, txt, html, xlsx

Example: playpulse report --type category --format xlsx --out ./reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := report.ParseType(reportType)
			if err != nil {
				return err
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			d, err := buildDashboard(cmd.Context(), flags)
			if err != nil {
				return err
			}
			rep, err := report.NewGenerator().Generate(t, d)
			if err != nil {
				return err
			}
			path, err := report.Write(outDir, rep, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&reportType, "type", string(report.TypeOverview), "Report type")
	cmd.Flags().StringVar(&format, "format", string(report.FormatJSON), "Output format")
	cmd.Flags().StringVar(&outDir, "out", defaultDir, "Directory to write to (REPORT_DIR)")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	genConfig := testkit.DefaultPlayStoreConfig()
	var outDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic play-store dataset as CSV",
		Long: `Generate apps.csv and reviews.csv in the raw export format.

Example: playpulse generate --count 2000 --seed 7 --out ./data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, reviews := testkit.NewPlayStoreGenerator(genConfig).Generate()

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return errors.Wrapf(err, "failed to create %s", outDir)
			}
			if err := writeWith(filepath.Join(outDir, "apps.csv"), func(f *os.File) error {
				return testkit.WriteAppsCSV(f, records)
			}); err != nil {
				return err
			}
			if err := writeWith(filepath.Join(outDir, "reviews.csv"), func(f *os.File) error {
				return testkit.WriteReviewsCSV(f, reviews)
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d apps and %d reviews to %s\n", len(records), len(reviews), outDir)
			return nil
		},
	}

	cmd.Flags().IntVar(&genConfig.AppCount, "count", genConfig.AppCount, "Number of apps")
	cmd.Flags().Int64Var(&genConfig.Seed, "seed", genConfig.Seed, "Random seed")
	cmd.Flags().Float64Var(&genConfig.ReviewsPerApp, "reviews-per-app", genConfig.ReviewsPerApp, "Average reviews per app")
	cmd.Flags().Float64Var(&genConfig.RatingDriftPerDay, "rating-drift", genConfig.RatingDriftPerDay, "Rating change per day of last update")
	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory")
	return cmd
}

// source picks the synthetic or file-backed dataset
func source(flags *dataFlags) (ports.AppSource, error) {
	if flags.synthetic {
		genConfig := testkit.DefaultPlayStoreConfig()
		genConfig.Seed = flags.seed
		genConfig.PopularThreshold = flags.popular
		return testkit.NewGeneratedSource(genConfig), nil
	}
	if flags.appsFile == "" {
		return nil, errors.ConfigInvalid("no apps file: pass --apps, set APPS_FILE, or use --synthetic")
	}

	coercer := ingest.NewCoercer(ingest.CoercionConfig{
		PopularInstallThreshold: flags.popular,
		NormalizeCategories:     true,
	})
	return ingest.NewFileSource(flags.appsFile, flags.reviewsFile, flags.sheet, coercer), nil
}

func loadService(ctx context.Context, flags *dataFlags) (*app.DashboardService, error) {
	src, err := source(flags)
	if err != nil {
		return nil, err
	}
	svc := app.NewDashboardService(src, flags.topN)
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func buildDashboard(ctx context.Context, flags *dataFlags) (*stats.Dashboard, error) {
	svc, err := loadService(ctx, flags)
	if err != nil {
		return nil, err
	}
	return svc.Current(ctx)
}

// readSeries loads a date,value CSV into trend points
func readSeries(ctx context.Context, path string) ([]stats.TrendPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NotFound(path)
	}
	defer f.Close()

	data, err := excel.ReadCSV(ctx, f, path)
	if err != nil {
		return nil, err
	}

	dateCol, valueCol := "", ""
	for _, h := range data.Headers {
		switch strings.ToLower(h) {
		case "date":
			dateCol = h
		case "value":
			valueCol = h
		}
	}
	if dateCol == "" || valueCol == "" {
		return nil, errors.ValidationError("series CSV needs date and value columns")
	}

	coercer := ingest.NewCoercer(ingest.DefaultCoercionConfig())
	points := make([]stats.TrendPoint, 0, len(data.Rows))
	for _, row := range data.Rows {
		date, _ := coercer.ParseDate(row[dateCol])
		value, err := strconv.ParseFloat(row[valueCol], 64)
		if err != nil {
			value = math.NaN()
		}
		points = append(points, stats.TrendPoint{Date: date, Value: value})
	}
	return points, nil
}

func writeWith(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return f.Close()
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
