package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metcalfc/skim/internal/extract"
)

func newTOCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toc <file>",
		Short: "Show a document's table of contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := extract.ForFile(args[0])
			provider, ok := format.(extract.TOCProvider)
			if !ok {
				return fmt.Errorf("format does not support a table of contents (supported: %s)",
					strings.Join(extract.SupportedFormats(), ", "))
			}

			entries, err := provider.TOC(args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No headings found.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s%s\n", strings.Repeat("  ", e.Level), e.Title)
			}
			return nil
		},
	}
}
