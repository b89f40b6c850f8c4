package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/service/profile"
)

func newStatsCmd(d deps) *cobra.Command {
	var profileName string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print study statistics for a profile without opening a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := d.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.storage.Close()

			b, err := profile.ReadBundle(cmd.Context(), e.storage.KV, profileName)
			if err != nil {
				return err
			}

			mastered := lo.CountBy(b.Vocabulary, func(r domain.VocabularyRecord) bool { return r.IsMastered() })
			seconds := lo.SumBy(b.Stats.History, func(h domain.DayHistory) int { return h.Seconds })

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "profile\t%s\n", b.Profile.Name)
			fmt.Fprintf(tw, "level\t%s\n", b.Profile.LevelTag)
			fmt.Fprintf(tw, "words\t%d\n", len(b.Vocabulary))
			fmt.Fprintf(tw, "mastered\t%d\n", mastered)
			fmt.Fprintf(tw, "learned\t%d\n", b.Stats.TotalLearned)
			fmt.Fprintf(tw, "streak\t%d\n", b.Stats.Streak)
			fmt.Fprintf(tw, "study days\t%d\n", len(b.Stats.History))
			fmt.Fprintf(tw, "study minutes\t%d\n", seconds/60)
			fmt.Fprintf(tw, "best quiz\t%d\n", b.Stats.BestQuizScore)
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "profile name (required)")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}
