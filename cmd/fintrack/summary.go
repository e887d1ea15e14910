package main

import (
	"github.com/spf13/cobra"
)

func summaryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "summary",
		Aliases: []string{"dashboard"},
		Short:   "Show net worth, totals, trends and recent activity",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireUser(); err != nil {
				return err
			}
			doc, err := c.app.renderer.Dashboard(c.app.dashboard.Build())
			if err != nil {
				return err
			}
			return c.display(cmd, doc)
		},
	}
}
