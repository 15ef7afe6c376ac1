package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/internal/app"
	"github.com/phanxgames/sprout/internal/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the site in a window",
	Long:  `Opens the portfolio pages in a window. Hover or touch cards, buttons and links to grow animations around them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("debug") {
			e.cfg.Debug, _ = cmd.Flags().GetBool("debug")
		}
		if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
			e.cfg.MetricsAddr = addr
		}

		opts := app.Options{Logger: e.log}
		if path, _ := cmd.Flags().GetString("script"); path != "" {
			if opts.Script, err = loadScript(path); err != nil {
				return err
			}
			opts.SnapshotDir, _ = cmd.Flags().GetString("out")
		}

		if e.cfg.MetricsAddr != "" {
			reg := prometheus.NewRegistry()
			opts.Observer = metrics.New(reg)
			srv := &http.Server{Addr: e.cfg.MetricsAddr, Handler: metrics.Handler(reg)}
			go func() {
				e.log.Info("serving metrics", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					e.log.Error("metrics server failed", "error", err)
				}
			}()
			defer srv.Close()
		}

		a, err := app.New(e.cfg, e.store, opts)
		if err != nil {
			return err
		}
		return a.Run()
	},
}

func loadScript(path string) (*sprout.ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return sprout.LoadScript(data)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("debug", false, "Log per-tick timings and show the stats overlay")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address")
	runCmd.Flags().String("script", "", "Drive the session from a JSON script instead of the pointer")
	runCmd.Flags().String("out", "snapshots", "Directory for script snapshots")

	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
