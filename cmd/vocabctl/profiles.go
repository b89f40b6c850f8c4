package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocabcoach/internal/app"
)

func newProfilesCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List stored profiles, most recently used first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := d.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.storage.Close()

			core := app.NewCore(e.log, e.cfg, e.storage.KV, d.clock)
			profiles, err := core.Sessions.ListKnownProfiles(cmd.Context())
			if err != nil {
				return fmt.Errorf("list profiles: %w", err)
			}
			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no profiles")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLEVEL\tLEARNED\tSTREAK\tUPDATED")
			for _, p := range profiles {
				updated := "-"
				if !p.UpdatedAt.IsZero() {
					updated = p.UpdatedAt.Format(time.DateTime)
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", p.Name, p.LevelTag, p.TotalLearned, p.Streak, updated)
			}
			return tw.Flush()
		},
	}
}
