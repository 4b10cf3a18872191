package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ChenMel27/adaptive-recall-engine/internal/httpapi"
	"github.com/ChenMel27/adaptive-recall-engine/internal/judge"
	"github.com/ChenMel27/adaptive-recall-engine/internal/llm"
	"github.com/ChenMel27/adaptive-recall-engine/internal/session"
	"github.com/ChenMel27/adaptive-recall-engine/internal/store"
	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recall API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(cfg.Database, log)
		if err != nil {
			return err
		}
		if err := st.SeedTopics(ctx, topic.Catalog); err != nil {
			return err
		}

		provider, err := llm.NewProvider(ctx, cfg.LLM, log)
		if err != nil {
			return err
		}

		svc := session.New(st, judge.NewLLMAdapter(provider), cfg.Thresholds, log)
		router := httpapi.NewRouter(httpapi.NewHandler(svc, log))

		srv := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.StepTimeout,
			WriteTimeout: cfg.Server.StepTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("server listening", zap.String("addr", cfg.Server.Addr))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
