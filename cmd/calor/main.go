// Command calor is the Calor compiler core's CLI driver: it wires the
// Manifest Store, Binder, Effect Engine, Verifier, and Migration
// Analyzer behind three subcommands. Output formatting and the surface
// parser are out of core scope (spec.md §1); this binary is the
// plumbing that would carry a real frontend's output into the core,
// the way cmd/ailang carries a parsed program into its evaluator.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	root := newRootCmd(unimplementedFrontend{})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
}

func newRootCmd(frontend Frontend) *cobra.Command {
	var manifestPaths []string

	root := &cobra.Command{
		Use:   "calor",
		Short: "calor - effect-typed source language core for AI coding agents",
		Long: bold("Calor") + ` compiles annotated per-function effect metadata,
verifies contracts against a quantifier-free SMT fragment, and migrates
C# projects toward Calor's idiom.`,
	}
	root.PersistentFlags().StringArrayVar(&manifestPaths, "manifest", nil,
		"path to a project-local effect manifest (YAML or JSON); repeatable")

	root.AddCommand(newCheckCmd(frontend, &manifestPaths))
	root.AddCommand(newVerifyCmd(frontend, &manifestPaths))
	root.AddCommand(newMigrateCmd())
	return root
}

func printHeader(verb, path string) {
	fmt.Printf("%s %s %s\n", cyan("→"), verb, path)
}
