package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocabcoach/internal/app"
	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/importer"
	"github.com/heartmarshall/vocabcoach/internal/service/profile"
)

func newImportCmd(d deps) *cobra.Command {
	var (
		profileName string
		sheet       string
		level       string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a CSV or XLSX word list into a profile",
		Long: "Import a CSV or XLSX word list into a profile. Columns are word, definition,\n" +
			"translation, example, phonetic, topic, level; a header row may reorder them.\n" +
			"The profile is created when missing. The previously active session is restored.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			records, report, err := importer.ReadFile(args[0], importer.Options{Sheet: sheet})
			if err != nil {
				return err
			}
			for _, msg := range report.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), "skipped", msg)
			}

			e, err := d.open(ctx)
			if err != nil {
				return err
			}
			defer e.storage.Close()

			core := app.NewCore(e.log, e.cfg, e.storage.KV, d.clock)

			prev, err := core.Sessions.Resume(ctx)
			if err != nil && !errors.Is(err, domain.ErrNoSession) {
				return fmt.Errorf("resume session: %w", err)
			}

			p, err := core.Sessions.Login(ctx, profileName, profile.LoginOptions{LevelTag: level})
			if err != nil {
				return err
			}
			added, err := core.Study.ImportRecords(ctx, records)
			if err != nil {
				return err
			}
			if err := core.Sessions.Persist(ctx); err != nil {
				return fmt.Errorf("save profile: %w", err)
			}

			if prev.Key != "" && prev.Key != p.Key {
				if _, err := core.Sessions.Login(ctx, prev.Name, profile.LoginOptions{}); err != nil {
					return fmt.Errorf("restore session %s: %w", prev.Name, err)
				}
			} else if prev.Key == "" {
				if err := core.Sessions.Logout(ctx); err != nil {
					return fmt.Errorf("clear session: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d rows into %s (%d skipped)\n",
				added, report.Rows, p.Name, report.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "profile name (required)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "XLSX sheet name, defaults to the first sheet")
	cmd.Flags().StringVar(&level, "level", "", "level tag applied when the profile is created")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}
