package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sprout/internal/app"
)

var renderCmd = &cobra.Command{
	Use:   "render <script.json>",
	Short: "Play a session script without a window and write its snapshots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		script, err := loadScript(args[0])
		if err != nil {
			return err
		}
		if w, _ := cmd.Flags().GetInt("width"); w > 0 {
			e.cfg.Window.Width = w
		}
		if h, _ := cmd.Flags().GetInt("height"); h > 0 {
			e.cfg.Window.Height = h
		}
		if cmd.Flags().Changed("seed") {
			e.cfg.Seed, _ = cmd.Flags().GetUint64("seed")
		}
		out, _ := cmd.Flags().GetString("out")
		maxFrames, _ := cmd.Flags().GetInt("max-frames")

		a, err := app.New(e.cfg, e.store, app.Options{
			Logger:      e.log,
			Headless:    true,
			Script:      script,
			SnapshotDir: out,
		})
		if err != nil {
			return err
		}
		frames, err := a.RunScript(maxFrames)
		if err != nil {
			return fmt.Errorf("script failed after %d frames: %w", frames, err)
		}
		for _, p := range a.Snapshots() {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("out", "o", "snapshots", "Directory for snapshots")
	renderCmd.Flags().Int("max-frames", 3600, "Stop after this many frames")
	renderCmd.Flags().Int("width", 0, "Viewport width; overrides the config")
	renderCmd.Flags().Int("height", 0, "Viewport height; overrides the config")
	renderCmd.Flags().Uint64("seed", 0, "Random seed; overrides the config")
}
