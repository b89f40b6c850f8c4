package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocabcoach/internal/service/profile"
)

func newMigrateCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and convert legacy profile keys",
		Long: "Apply schema migrations and convert legacy profile keys.\n" +
			"Postgres schema migrations run when storage is opened. Legacy keys are\n" +
			"converted once per storage and left in place.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := d.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.storage.Close()

			report, err := profile.NewMigrator(e.log, e.storage.KV, e.storage.Tx, d.clock).Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("migrate legacy profiles: %w", err)
			}

			out := cmd.OutOrStdout()
			if report.AlreadyDone {
				fmt.Fprintln(out, "legacy migration already done")
				return nil
			}
			fmt.Fprintf(out, "migrated %d profiles, skipped %d, quarantined %d\n",
				len(report.Migrated), len(report.Skipped), len(report.Quarantined))
			for _, k := range report.Migrated {
				fmt.Fprintln(out, "  +", k)
			}
			for _, k := range report.Skipped {
				fmt.Fprintln(out, "  =", k)
			}
			for _, k := range report.Quarantined {
				fmt.Fprintln(out, "  !", k)
			}
			return nil
		},
	}
}
