package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/testepapers/test-e-portal-api-service/internal/handler"
	"github.com/testepapers/test-e-portal-api-service/internal/model"
	"github.com/testepapers/test-e-portal-api-service/internal/scoring"
	"github.com/testepapers/test-e-portal-api-service/internal/service"
	"github.com/testepapers/test-e-portal-api-service/internal/store"
	"github.com/testepapers/test-e-portal-api-service/internal/validator"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "testeportal",
		Short: "Answer validation and LLM-assisted scoring service",
	}

	serve := serveCmd()
	root.AddCommand(serve, seedCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `testeportal --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP validation server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("db", "testeportal.db", "SQLite database path")
	f.StringSliceP("questions", "q", nil, "Paths to questions JSON files to import on first run (repeatable)")
	f.String("openai-key", "", "OpenAI API key (or set TESTEPORTAL_OPENAI_KEY)")
	f.String("openai-model", "gpt-4o-mini", "OpenAI model for subjective scoring")
	f.String("gemini-key", "", "Gemini API key (or set TESTEPORTAL_GEMINI_KEY)")
	f.String("gemini-model", "gemini-1.5-flash", "Gemini model for subjective scoring")
	f.Duration("llm-timeout", 60*time.Second, "Per-provider timeout for scoring calls")
	f.Float64("passing-score", 0.5, "Fraction of total marks a subjective answer needs to pass")
	f.String("profile", "default", "Active profile reported by GET /info")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import questions from JSON files into the database",
		RunE:  runSeed,
	}
	f := cmd.Flags()
	f.String("db", "testeportal.db", "SQLite database path")
	f.StringSliceP("questions", "q", nil, "Paths to questions JSON files (repeatable, required)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")

	_ = cmd.MarkFlagRequired("questions")

	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("TESTEPORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("testeportal")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/testeportal")
	v.AddConfigPath("/etc/testeportal")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func configFromViper(v *viper.Viper) model.Config {
	return model.Config{
		Addr:    v.GetString("addr"),
		DBPath:  v.GetString("db"),
		Profile: v.GetString("profile"),
		OpenAI: model.ProviderConfig{
			APIKey: v.GetString("openai-key"),
			Model:  v.GetString("openai-model"),
		},
		Gemini: model.ProviderConfig{
			APIKey: v.GetString("gemini-key"),
			Model:  v.GetString("gemini-model"),
		},
		LLMTimeout:   v.GetDuration("llm-timeout"),
		PassingScore: v.GetFloat64("passing-score"),
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	cfg := configFromViper(v)

	db, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// Import questions on an empty database only; reseeding a live database
	// goes through the seed subcommand.
	if paths := v.GetStringSlice("questions"); len(paths) > 0 {
		count, err := db.QuestionCount(cmd.Context())
		if err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		if count == 0 {
			if err := loadQuestions(cmd.Context(), db, paths); err != nil {
				return fmt.Errorf("load questions: %w", err)
			}
		} else {
			slog.Info("database already has questions, skipping import", "count", count)
		}
	}

	scorer := scoring.NewService(
		scoring.NewOpenAI(cfg.OpenAI, cfg.LLMTimeout),
		scoring.NewGemini(cfg.Gemini, cfg.LLMTimeout),
	)
	registry := validator.NewRegistry(validator.NewSubjective(scorer, cfg.PassingScore))
	svc := service.New(db, registry)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	handler.New(db, svc, cfg.Profile).Routes(r)

	srv := &http.Server{Addr: cfg.Addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"addr", cfg.Addr,
			"db", cfg.DBPath,
			"profile", cfg.Profile,
			"openai_model", cfg.OpenAI.Model,
			"gemini_model", cfg.Gemini.Model,
			"llm_timeout", cfg.LLMTimeout,
			"passing_score", cfg.PassingScore,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return loadQuestions(cmd.Context(), db, v.GetStringSlice("questions"))
}

func loadQuestions(ctx context.Context, db *store.Store, paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		var questions []model.Question
		if err := json.Unmarshal(data, &questions); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		for _, q := range questions {
			if _, err := db.InsertQuestion(ctx, q); err != nil {
				return fmt.Errorf("insert question from %s: %w", path, err)
			}
		}
		slog.Info("imported questions", "path", path, "count", len(questions))
	}
	return nil
}
