package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juanmicrosoft/calor/internal/migrate"
)

func newMigrateCmd() *cobra.Command {
	var failOnUnsupported bool
	var concurrency int

	cmd := &cobra.Command{
		Use:   "migrate <project-dir>",
		Short: "drive the Migration Analyzer over a C# project directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			printHeader("Migrating", root)

			report, err := migrate.RunProject(context.Background(), root, migrate.Options{
				Concurrency: concurrency,
				Convert:     migrate.ConvertOptions{FailOnUnsupported: failOnUnsupported},
			})
			if err != nil {
				return err
			}

			for _, f := range report.Files {
				switch {
				case f.Convertibility == migrate.Skip:
					fmt.Printf("  %s %s (skipped)\n", yellow("○"), f.Path)
				case f.Err != nil:
					fmt.Printf("  %s %s: %v\n", red("✗"), f.Path, f.Err)
				default:
					fmt.Printf("  %s %s\n", cyan("✓"), f.Path)
				}
			}

			fmt.Printf("\n%d successful, %d partial, %d failed, %d skipped (%d issues, avg advantage %.2fx)\n",
				report.Successful, report.Partial, report.Failed, report.Skipped,
				report.TotalIssues, report.AggregateAdvantage())

			if report.AnyFailed() {
				return fmt.Errorf("migration reported at least one failed file")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnUnsupported, "fail-on-unsupported", false,
		"hard-fail a file's conversion on its first unsupported construct instead of emitting a TODO")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0,
		"max in-flight file conversions; 0 defaults to the logical processor count")
	return cmd
}
