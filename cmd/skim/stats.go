package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/metcalfc/skim/internal/extract"
	"github.com/metcalfc/skim/internal/rsvp"
	"github.com/metcalfc/skim/internal/wordfreq"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Show timing statistics for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := activeCfg.Settings()

			blocks, err := extract.ExtractBlocks(args[0])
			if err != nil {
				return err
			}
			slides, stats, _ := rsvp.ProcessContent(blocks, settings, wordfreq.Default())

			fmt.Printf("Slides:            %d\n", stats.SlideCount)
			fmt.Printf("Reading time:      %s\n", ms(stats.TotalDuration))
			fmt.Printf("With pauses:       %s\n", ms(stats.TotalDurationWithPauses))
			if stats.SlideCount > 0 {
				fmt.Printf("Slide duration:    %s min / %s max\n",
					ms(stats.MinDuration), ms(stats.MaxDuration))
			}
			fmt.Printf("Realized WPM:      %d (target %d, %s)\n",
				stats.RealizedWPM, settings.WPM, settings.Algorithm)

			words := 0
			for _, s := range slides {
				words += s.WordCount
			}
			fmt.Printf("Words:             %d\n", words)
			return nil
		},
	}
}

func ms(v float64) time.Duration {
	return time.Duration(v) * time.Millisecond
}
