package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/valvenet/internal/metrics"
	"github.com/katalvlaran/valvenet/internal/runner"
	"github.com/katalvlaran/valvenet/internal/server"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr, path string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver and run history over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("store") {
				a.cfg.Store.Path = path
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (host:port)")
	cmd.Flags().StringVar(&path, "store", "", "SQLite file recording run history")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	opts, err := a.cfg.SearchOptions()
	if err != nil {
		return err
	}
	r := runner.New(opts)
	r.Logger = a.logger
	r.Metrics = metrics.New()

	st, err := a.openStore()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
		r.Store = st
	}

	if a.cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           server.New(r, a.logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", srv.Addr, "store", a.cfg.Store.Path)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
