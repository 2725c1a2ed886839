package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/docpilot/docpilot/internal/config"
	"github.com/docpilot/docpilot/internal/docreview"
	"github.com/docpilot/docpilot/internal/github"
	"github.com/docpilot/docpilot/internal/pipeline"
	"github.com/docpilot/docpilot/internal/providers"
	"github.com/docpilot/docpilot/internal/usage"
	"github.com/docpilot/docpilot/internal/webhook"
)

var (
	flagAddr  string
	flagDebug bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GitHub webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := map[string]string{}
		if flagAddr != "" {
			overrides["addr"] = flagAddr
		}
		if flagDebug {
			overrides["debug"] = "true"
		}

		cfg, err := config.Load(overrides)
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}

		log, err := newLogger(cfg.LogDebug)
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		defer func() { _ = log.Sync() }()

		gh, err := newGitHubClient(cfg.GitHub)
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}

		var opts []providers.MiniMaxOption
		if cfg.Model.BaseURL != "" {
			opts = append(opts, providers.WithBaseURL(cfg.Model.BaseURL))
		}
		synth := docreview.NewSynthesizer(providers.NewMiniMax(cfg.Model.Name, opts...), log)

		p := pipeline.New(
			gh,
			docreview.Strategies(synth),
			docreview.ModelConfig{APIKey: cfg.Model.APIKey, GroupID: cfg.Model.GroupID},
			usage.NewMemoryRecorder(),
			log,
		)

		srv := webhook.New(p, log)
		log.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := http.ListenAndServe(cfg.Server.Addr, srv.Router()); err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

func newLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

func newGitHubClient(cfg config.GitHubConfig) (*github.Client, error) {
	if cfg.AppMode() {
		return github.NewAppClient(cfg.AppID, cfg.InstallationID, cfg.PrivateKeyPath)
	}
	if cfg.Token == "" {
		fmt.Fprintln(os.Stderr, "warning: no GitHub credentials configured; API calls will be unauthenticated")
	}
	return github.NewTokenClient(cfg.Token), nil
}
