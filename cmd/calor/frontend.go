package main

import (
	"fmt"

	"github.com/juanmicrosoft/calor/internal/ast"
)

// Frontend turns Calor surface syntax into a parsed ast.File. The lexer
// and surface parser are deliberately out of core scope (spec.md §1:
// "lexer and surface parser for the Calor syntax ... are consumers of
// the core's outputs"), so this package depends on the seam rather than
// an implementation. A real build wires a concrete Frontend in; this
// binary ships a stub that reports the gap instead of pretending to
// parse.
type Frontend interface {
	Parse(path string) (*ast.File, error)
}

// unimplementedFrontend satisfies Frontend for a binary built without a
// surface parser wired in.
type unimplementedFrontend struct{}

func (unimplementedFrontend) Parse(path string) (*ast.File, error) {
	return nil, fmt.Errorf("no surface-syntax frontend is wired into this build; %s was not parsed (the Calor lexer/parser is an external collaborator per the core's scope boundary)", path)
}
