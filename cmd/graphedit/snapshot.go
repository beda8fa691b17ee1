package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/psidex/graphedit/internal/snapshot"
)

func snapshotCmd(a *app) *cobra.Command {
	var (
		url string
		out string
		cfg = snapshot.DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture a PNG of the editor or of an echarts export",
		Long: "Capture a PNG with headless Chrome. Without --url the seeded graph is\n" +
			"exported with the echarts provider and that page is captured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				dir, err := os.MkdirTemp("", "graphedit-snapshot")
				if err != nil {
					return err
				}
				defer os.RemoveAll(dir)

				filename, err := a.export("echarts", filepath.Join(dir, "graph"))
				if err != nil {
					return err
				}
				abs, err := filepath.Abs(filename)
				if err != nil {
					return err
				}
				url = "file://" + filepath.ToSlash(abs)
			}

			png, err := snapshot.NewCapturer(a.logger, cfg).Capture(cmd.Context(), url)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Printf("%s %s\n", good.Sprint("wrote"), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&url, "url", "u", "", "page to capture, e.g. http://127.0.0.1:8051/")
	cmd.Flags().StringVarP(&out, "out", "o", "graphedit.png", "PNG file to write")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "give up after this long")
	cmd.Flags().DurationVar(&cfg.Settle, "settle", cfg.Settle, "wait this long after load before capturing")
	return cmd
}
