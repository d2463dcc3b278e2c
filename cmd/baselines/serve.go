package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"baselines/internal/client"
	"baselines/internal/handler"
	"baselines/internal/models"
	"baselines/internal/repository"
	"baselines/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func (a *app) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [corpus.tsv]",
		Short: "Train the SVM baseline on the whole corpus and serve it over HTTP",
		Args: func(cmd *cobra.Command, args []string) error {
			if a.fromDB {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: a.serve,
	}
}

func (a *app) serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sqlx.DB
	if a.fromDB {
		var err error
		db, err = repository.Open(a.cfg, a.logger)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	texts, labels, err := a.loadCorpus(ctx, db, args)
	if err != nil {
		return err
	}

	clf, err := service.NewClassifier(a.cfg, texts, labels, a.logger)
	if err != nil {
		return err
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(a.logger))
	handler.NewHandler(clf, a.logger).RegisterRoutes(router)

	listener, err := net.Listen("tcp", ":"+a.cfg.Server.Port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.logger.Info("Server starting", zap.String("address", listener.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		a.logger.Info("Server exited")
		return nil
	})
	return g.Wait()
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func (a *app) classifyCommand() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "classify <text>...",
		Short: "Classify texts with a running classification service",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = "http://localhost:" + a.cfg.Server.Port
			}
			c := client.NewClient(server)
			defer c.CloseIdleConnections()

			messages := make([]models.BatchMessage, len(args))
			for i, text := range args {
				messages[i] = models.BatchMessage{ID: int64(i + 1), Text: text}
			}

			resp, err := c.ClassifyBatch(cmd.Context(), messages)
			if err != nil {
				return err
			}

			a.logger.Debug("Texts classified",
				zap.Int("total", resp.Total),
				zap.Float64("processing_time_ms", resp.ProcessingTimeMs))

			out := cmd.OutOrStdout()
			for _, r := range resp.Results {
				fmt.Fprintf(out, "%s\t%s\n", r.Category, r.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "service base URL (default http://localhost:<server.port>)")
	return cmd
}
