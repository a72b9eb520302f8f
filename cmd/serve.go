package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mockmate/interview-cli/internal/auth"
	"github.com/mockmate/interview-cli/internal/questions"
	"github.com/mockmate/interview-cli/internal/scoring"
	"github.com/mockmate/interview-cli/internal/server"
	"github.com/mockmate/interview-cli/internal/transcribe"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interview API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		source, err := questions.New(cfg.Questions, cfg.OpenAI)
		if err != nil {
			return eris.Wrap(err, "cmd: question source")
		}

		// A missing transcriber is not fatal; the analyze route reports the
		// capability as unavailable instead.
		transcriber, err := transcribe.New(cfg.Transcribe, cfg.OpenAI)
		if err != nil {
			zap.L().Warn("transcription disabled", zap.Error(err))
			transcriber = nil
		}

		srv := server.New(
			cfg.Server,
			st,
			auth.NewTokenVerifier(cfg.Auth.Secret),
			source,
			transcriber,
			scoring.NewRandom(cfg.Scoring),
		)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: srv.Handler(cfg.Server.AllowedOrigins),
		}

		g, gCtx := errgroup.WithContext(ctx)

		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", port))
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "cmd: server listen")
			}
			return nil
		})

		g.Go(func() error {
			<-gCtx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
