package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/researchaccelerator-hub/tiktok-export-analyzer/analytics"
	"github.com/researchaccelerator-hub/tiktok-export-analyzer/common"
	"github.com/researchaccelerator-hub/tiktok-export-analyzer/config"
	"github.com/researchaccelerator-hub/tiktok-export-analyzer/export"
	"github.com/researchaccelerator-hub/tiktok-export-analyzer/model"
	"github.com/researchaccelerator-hub/tiktok-export-analyzer/session"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	rootCmd := &cobra.Command{
		Use:   "tiktok-analyzer",
		Short: "Analyze TikTok profile-export JSON files",
		Long: "tiktok-analyzer ingests TikTok profile-export JSON documents, locates post and " +
			"account records wherever they sit in the document tree, normalizes their stats and " +
			"supports filtering, sorting, pagination, aggregation and CSV export.",
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze <file.json> [more files...]",
		Short: "Ingest one or more export files and report on their posts",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAnalyze,
	}

	flags := analyzeCmd.Flags()
	defaults := config.DefaultAnalyzerConfig()
	flags.String("search", defaults.SearchText, "Case-insensitive caption filter")
	flags.Float64("min-views", defaults.MinViews, "Minimum view count filter")
	flags.Float64("min-engagement", defaults.MinEngagementRate, "Minimum engagement rate filter (percent)")
	flags.String("sort", defaults.SortKey, "Sort column: views, likes, comments, shares, saves, caption, date, engagementRate")
	flags.String("dir", defaults.SortDirection, "Sort direction: asc or desc")
	flags.Int("page", defaults.Page, "Page number (1-based)")
	flags.Int("page-size", defaults.PageSize, "Rows per page")
	flags.Int("top", defaults.TopN, "Size of the top-posts ranking")
	flags.String("csv", defaults.CSVPath, "Write the filtered posts as CSV to this path")
	flags.Bool("verbose", false, "Enable debug logging")

	viper.SetEnvPrefix("TIKTOK_ANALYZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind flags")
	}

	rootCmd.AddCommand(analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if viper.GetBool("verbose") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := &config.AnalyzerConfig{
		SearchText:        viper.GetString("search"),
		MinViews:          viper.GetFloat64("min-views"),
		MinEngagementRate: viper.GetFloat64("min-engagement"),
		SortKey:           viper.GetString("sort"),
		SortDirection:     viper.GetString("dir"),
		Page:              viper.GetInt("page"),
		PageSize:          viper.GetInt("page-size"),
		TopN:              viper.GetInt("top"),
		CSVPath:           viper.GetString("csv"),
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Parse all inputs up front, concurrently. Each file becomes its own
	// independent session; documents are never merged.
	docs := make([]any, len(args))
	var g errgroup.Group
	for i, path := range args {
		g.Go(func() error {
			doc, err := common.ReadDocument(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, doc := range docs {
		sess := session.Load(doc)
		report(sess, cfg, args[i])

		if cfg.CSVPath == "" {
			continue
		}
		result := sess.Query(cfg.QueryState())
		path := outputPath(cfg.CSVPath, args[i], len(args))
		if err := writeCSV(path, result.Page); err != nil {
			return err
		}
		log.Info().Str("path", path).Int("rows", len(result.Page)).Msg("CSV written")
	}
	return nil
}

func report(sess *session.Session, cfg *config.AnalyzerConfig, source string) {
	acct := sess.Account()
	totals := sess.Totals()

	fmt.Printf("\n== %s ==\n", source)
	fmt.Printf("Account: %s (%s)\n", acct.Handle, acct.DisplayName)
	fmt.Printf("Followers: %s  Following: %s  Videos: %s  Total likes: %s\n",
		formatOptional(acct.Followers), formatOptional(acct.Following),
		formatOptional(acct.VideoCount), formatOptional(acct.TotalLikes))

	if sess.Empty() {
		fmt.Println("Couldn't find any posts in this file; check the file format.")
		fmt.Printf("Totals: views=0 likes=0 comments=0 shares=0 saves=0\n")
		return
	}

	fmt.Printf("Posts: %d\n", len(sess.Posts()))
	fmt.Printf("Totals: views=%.0f likes=%.0f comments=%.0f shares=%.0f saves=%.0f avgER=%.2f%% avgViews=%.1f\n",
		totals.Views, totals.Likes, totals.Comments, totals.Shares, totals.Saves,
		totals.AvgEngagementRate, totals.AvgViews)

	result := sess.Query(cfg.QueryState())
	pages := analytics.PageCount(result.TotalMatching, cfg.PageSize)
	fmt.Printf("\n%d matching post(s), page %d of %d:\n", result.TotalMatching, cfg.Page, pages)
	for _, p := range result.Page {
		fmt.Printf("  [%s] %-40.40s views=%.0f ER=%.2f%%\n", p.ID, p.Caption, p.Stats.Views, p.EngagementRate)
	}

	top := sess.TopN(analytics.SortViews, cfg.TopN)
	widths := analytics.BarWidths(top, analytics.SortViews)
	fmt.Printf("\nTop %d by views:\n", len(top))
	for i, p := range top {
		fmt.Printf("  %-30.30s %s %.0f\n", p.Caption, bar(widths[i]), p.Stats.Views)
	}
}

func writeCSV(path string, posts []model.Post) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := export.Write(f, posts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// outputPath derives the per-file CSV path. A single input writes straight
// to the configured path; multiple inputs prefix it with each input's base
// name so files don't clobber each other.
func outputPath(csvPath, input string, inputCount int) string {
	if inputCount <= 1 {
		return csvPath
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(csvPath), base+"-"+filepath.Base(csvPath))
}

func formatOptional(v *float64) string {
	if v == nil {
		return model.Placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func bar(width float64) string {
	const maxChars = 20
	n := int(width * maxChars)
	if n < 0 {
		n = 0
	}
	return strings.Repeat("#", n) + strings.Repeat(".", maxChars-n)
}
