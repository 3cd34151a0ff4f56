package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/interntrack/interntrack/internal/analysis"
	"github.com/interntrack/interntrack/internal/feedback"
	"github.com/interntrack/interntrack/internal/llm"
	"github.com/interntrack/interntrack/internal/quiz"
	"github.com/interntrack/interntrack/internal/store"
	"github.com/interntrack/interntrack/internal/tracker"
	"github.com/interntrack/interntrack/internal/tracks"
)

var rootCmd = &cobra.Command{
	Use:   "interntrack",
	Short: "Skill-gap analysis and progress tracking for interns",
	Long: "InternTrack analyzes an intern's skills against a track, quizzes daily study " +
		"sessions and tracks performance over time. Model calls fall back to offline " +
		"results when no LLM provider is configured.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides INTERNTRACK_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides INTERNTRACK_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("tracks", "", "YAML track catalog to load into the database")

	rootCmd.AddCommand(tracksCmd)
	rootCmd.AddCommand(internCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(perfCmd)
	rootCmd.AddCommand(cohortCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging(cmd *cobra.Command) error {
	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = os.Getenv("INTERNTRACK_LOG_LEVEL")
	}
	if level == "" {
		level = "warn"
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then INTERNTRACK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database and makes sure it has a track catalog: the
// --tracks file when given, otherwise the built-in catalog on first use.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := loadTracks(cmd, st); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

func loadTracks(cmd *cobra.Command, st *store.Store) error {
	ctx := cmd.Context()

	if path, _ := cmd.Flags().GetString("tracks"); path != "" {
		catalog, err := tracks.LoadFile(path)
		if err != nil {
			return err
		}
		for _, t := range catalog {
			if err := st.TrackRepo().Upsert(ctx, t); err != nil {
				return err
			}
		}
		slog.Info("loaded track catalog", "path", path, "tracks", len(catalog))
		return nil
	}

	catalog, err := tracks.Default()
	if err != nil {
		return err
	}
	seeded, err := st.TrackRepo().SeedIfEmpty(ctx, catalog)
	if err != nil {
		return err
	}
	if seeded {
		slog.Info("seeded built-in track catalog", "tracks", len(catalog))
	}
	return nil
}

func storeDeps(st *store.Store) tracker.Deps {
	return tracker.Deps{
		Tracks:   st.TrackRepo(),
		Interns:  st.InternRepo(),
		Sessions: st.SessionRepo(),
		Metrics:  st.MetricRepo(),
	}
}

// newReadService wires the tracker for commands that never reach a model.
func newReadService(st *store.Store) *tracker.Service {
	return tracker.New(storeDeps(st))
}

// newService wires the tracker over st. Without a configured provider the
// engines run on their offline fallbacks.
func newService(cmd *cobra.Command, st *store.Store) (*tracker.Service, llm.Config) {
	deps := storeDeps(st)

	primary, fast, cfg, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
	if err != nil {
		slog.Warn("LLM provider not configured, using offline results", "error", err)
		return tracker.New(deps), llm.DefaultConfig()
	}
	deps.Analysis = analysis.NewEngine(primary, analysis.DefaultConfig())
	deps.Quiz = quiz.NewEngine(primary, quiz.DefaultConfig())
	deps.Feedback = feedback.NewEngine(fast, feedback.DefaultConfig())
	return tracker.New(deps), cfg
}

// withLLMTimeout bounds a command that reaches a model.
func withLLMTimeout(ctx context.Context, cfg llm.Config) (context.Context, context.CancelFunc) {
	if cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.Timeout)
}
