package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psidex/graphedit/internal/graphs"
)

func exportCmd(a *app) *cobra.Command {
	var (
		provider string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the seeded graph to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, err := a.export(provider, out)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", good.Sprint("wrote"), filename)
			return nil
		},
	}
	cmd.Flags().StringVarP(&provider, "provider", "p", "echarts", "one of: "+strings.Join(graphs.Names(), ", "))
	cmd.Flags().StringVarP(&out, "out", "o", "graphedit", "output file name without an extension")
	return cmd
}

func (a *app) export(provider, out string) (string, error) {
	p, err := graphs.New(provider)
	if err != nil {
		return "", err
	}
	p.Load(a.cfg.Seed.Elements())

	filename, err := p.RenderToFile(out)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", provider, err)
	}
	a.logger.Debug("Exported graph", "provider", provider, "file", filename)
	return filename, nil
}
