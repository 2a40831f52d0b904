// Command graphlearn runs the GraphLearn animated backdrop in a window or
// headless, and serves the placeholder HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/graphlearn/backdrop"
	"github.com/graphlearn/backdrop/internal/config"
)

var (
	verbose    bool
	configPath string
	seed       uint64
	serveAPI   bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "graphlearn",
	Short: "GraphLearn animated 3D backdrop",
	Long: `graphlearn renders the animated background of the graph-learning web
client: a slowly rotating particle field, a translucent wireframe shell and a
handful of spinning nodes, with a camera that follows the pointer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if seed != 0 {
			cfg.Render.Seed = seed
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		zc := zap.NewProductionConfig()
		if cfg.Logging.Development {
			zc = zap.NewDevelopmentConfig()
		}
		level, err := zapcore.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zc.Level = zap.NewAtomicLevelAt(level)
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open a window and run the backdrop",
	RunE:  runView,
}

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the backdrop frame loop without a window",
	Long: `Drives the renderer from a fixed-rate ticker with no window. Useful for
soak runs and scripted pointer sweeps. Stops after headless.ticks frames, or on
interrupt when ticks is 0.`,
	RunE: runHeadless,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the placeholder HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "graphlearn.yaml", "Path to config file")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Random seed for the scene layout (0 = random)")

	viewCmd.Flags().BoolVar(&serveAPI, "serve", false, "Also serve the HTTP API while the window is open")

	rootCmd.AddCommand(viewCmd, headlessCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rendererOptions translates config into renderer options.
func rendererOptions() []backdrop.Option {
	opts := []backdrop.Option{
		backdrop.WithLogger(logger.Named("backdrop")),
		backdrop.WithDebug(cfg.Render.Debug || verbose),
		backdrop.WithShowFPS(cfg.Render.ShowFPS),
		backdrop.WithIntroFade(cfg.Render.IntroFade),
		backdrop.WithScreenshotDir(cfg.Render.ScreenshotDir),
	}
	if cfg.Render.Seed != 0 {
		opts = append(opts, backdrop.WithSeed(cfg.Render.Seed))
	}
	return opts
}

// attachScript loads the configured step script, if any.
func attachScript(r *backdrop.Renderer) error {
	if cfg.Render.Script == "" {
		return nil
	}
	data, err := os.ReadFile(cfg.Render.Script)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	s, err := backdrop.LoadScript(data)
	if err != nil {
		return err
	}
	r.SetScript(s)
	logger.Info("script attached", zap.String("path", cfg.Render.Script))
	return nil
}
