package main

import (
	"fmt"
	"log/slog"
	"os"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Chinh13571113/careermate-web-sub001"
	"github.com/Chinh13571113/careermate-web-sub001/internal/config"
	"github.com/Chinh13571113/careermate-web-sub001/internal/logging"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/adapters/file"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/adapters/memory"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/adapters/openai"
	redisadapter "github.com/Chinh13571113/careermate-web-sub001/pkg/adapters/redis"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "careermate",
	Short: "CareerMate is an AI powered interview rehearsal engine",
	Long:  `CareerMate runs mock job interviews: it generates questions from a job description, scores your answers one by one and writes a final feedback report.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// buildStore constructs the session store named by the configuration.
// The returned locker is non-nil only for backends that support
// distributed locking, and the closer releases backend connections.
func buildStore(cfg *config.Config) (ports.SessionStore, ports.SessionLocker, func() error, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil, nil, nil
	case config.BackendFile:
		return file.New(cfg.Store.Path), nil, nil, nil
	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Store.Redis.Address,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		store := redisadapter.NewFromClient(client)
		locker := redisadapter.NewLocker(client, "careermate:lock:")
		return store, locker, client.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// buildEngine wires the full stack from configuration: store, OpenAI
// client and engine facade.
func buildEngine(cfg *config.Config, logger *slog.Logger, extra ...careermate.Option) (*careermate.Engine, func() error, error) {
	store, locker, closer, err := buildStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.OpenAI.APIKey == "" {
		if closer != nil {
			closer()
		}
		return nil, nil, fmt.Errorf("no OpenAI API key configured (set CAREERMATE_OPENAI_API_KEY)")
	}

	clientOpts := []openai.Option{openai.WithSessionStore(store)}
	if cfg.OpenAI.BaseURL != "" {
		clientOpts = append(clientOpts, openai.WithBaseURL(cfg.OpenAI.BaseURL))
	}
	if cfg.OpenAI.Model != "" {
		clientOpts = append(clientOpts, openai.WithModel(cfg.OpenAI.Model))
	}
	client := openai.NewClient(cfg.OpenAI.APIKey, clientOpts...)

	opts := []careermate.Option{
		careermate.WithStore(store),
		careermate.WithLogger(logger),
		careermate.WithQuestionCap(cfg.QuestionCap),
	}
	if locker != nil {
		opts = append(opts, careermate.WithLocker(locker))
	}
	opts = append(opts, extra...)

	eng := careermate.New(client, client, opts...)
	return eng, closer, nil
}
