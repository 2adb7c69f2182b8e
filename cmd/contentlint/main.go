// Command contentlint checks content files for structural problems: missing
// or malformed front matter, unterminated fenced code blocks, and invalid
// hyperlink targets. It exits non-zero when any file fails.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"content-cms/pkg/services"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		dir     string
		pattern string
		format  string
		drafts  bool
	)

	rootCmd := &cobra.Command{
		Use:          "contentlint",
		Short:        "Lint markdown content files",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := services.LintTree(dir, pattern, drafts)
			if err != nil {
				return fmt.Errorf("lint %s: %w", dir, err)
			}

			failed := 0
			for _, report := range reports {
				if !report.OK() {
					failed++
				}
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			case "text":
				for _, report := range reports {
					for _, issue := range report.Issues {
						if issue.Line > 0 {
							fmt.Fprintf(cmd.OutOrStdout(), "%s:%d: %s: %s\n", report.Path, issue.Line, issue.Rule, issue.Message)
						} else {
							fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", report.Path, issue.Rule, issue.Message)
						}
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d files checked, %d with issues\n", len(reports), failed)
			default:
				return fmt.Errorf("unknown format: %s", format)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files have issues", failed, len(reports))
			}
			return nil
		},
	}

	rootCmd.Flags().StringVar(&dir, "dir", "content", "content directory to lint")
	rootCmd.Flags().StringVar(&pattern, "pattern", "**/*.md", "doublestar pattern for content files")
	rootCmd.Flags().BoolVar(&drafts, "drafts", false, "include draft records in the lint run")
	rootCmd.Flags().StringVar(&format, "format", "text", "output format (text or json)")

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
