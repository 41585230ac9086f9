package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juanmicrosoft/calor/internal/config"
	calerrors "github.com/juanmicrosoft/calor/internal/errors"
	"github.com/juanmicrosoft/calor/internal/manifest"
	"github.com/juanmicrosoft/calor/internal/pipeline"
	"github.com/juanmicrosoft/calor/internal/resolver"
)

func newCheckCmd(frontend Frontend, manifestPaths *[]string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "bind, infer, and enforce effects for a file without verifying contracts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(frontend, *manifestPaths, args[0], false)
		},
	}
	return cmd
}

func newVerifyCmd(frontend Frontend, manifestPaths *[]string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "check plus discharge requires/ensures/loop invariants against the SMT fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(frontend, *manifestPaths, args[0], true)
		},
	}
	return cmd
}

func runCheck(frontend Frontend, manifestPaths []string, path string, verify bool) error {
	cfg := config.Load()

	store := manifest.New()
	if bag := store.LoadAll(map[manifest.Source][]string{manifest.SourceProjectLocal: manifestPaths}); bag.HasErrors() {
		printDiagnostics(bag.All())
		return fmt.Errorf("manifest loading failed")
	}
	r := resolver.New(store, cfg.Policy())

	file, err := frontend.Parse(path)
	if err != nil {
		return err
	}

	verb := "Checking"
	if verify {
		verb = "Verifying"
	}
	printHeader(verb, path)

	result := pipeline.RunFile(file, r, pipeline.Options{Enforce: cfg.Enforce, Verify: verify})
	printDiagnostics(result.Diagnostics)

	if pipeline.ExitCode(result.Diagnostics) != 0 {
		return fmt.Errorf("%d diagnostic(s) reported", len(result.Diagnostics))
	}
	fmt.Printf("%s no errors found\n", cyan("✓"))
	return nil
}

func printDiagnostics(diagnostics []*calerrors.Report) {
	for _, d := range diagnostics {
		label := d.Code
		switch d.Severity {
		case calerrors.SeverityError:
			label = red(d.Code)
		case calerrors.SeverityWarning:
			label = yellow(d.Code)
		case calerrors.SeverityInfo:
			label = cyan(d.Code)
		}
		fmt.Printf("  [%s] %s: %s\n", d.Phase, label, d.Message)
	}
}
