package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quillium/quillium/internal/config"
	"github.com/quillium/quillium/internal/llm"
	"github.com/quillium/quillium/internal/quizgen"
	"github.com/quillium/quillium/internal/server"
	"github.com/quillium/quillium/internal/store"
	"github.com/quillium/quillium/internal/translate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := logrus.New()
	cfg := config.Load()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// Provider is optional. Without one the service still answers with
	// deterministic fallback questions.
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Running in fallback-only mode.")
	}
	if provider == nil {
		log.Warn("no LLM provider configured, using fallback generation")
	}

	trProvider, err := llm.NewTranslationProviderFromEnv(ctx, st.EventRepo(), provider)
	if err != nil {
		fmt.Fprintln(os.Stderr, "translation provider not configured:", err)
		trProvider = provider
	}

	translator := translate.New(trProvider, translate.DefaultConfig())
	service := quizgen.New(provider, translator, quizgen.DefaultConfig(), log)

	server.Version = version
	srv := server.New(service, cfg, log)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	return srv.Listen()
}
