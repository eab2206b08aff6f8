/*
Package grammarfile reads and writes collections of grammars as JSON documents.

A grammar file bundles token definitions with one or more grammars:

    {
      "tokens":   [ {"id": 10, "name": "+", "pattern": "\\+"}, … ],
      "grammars": [ { "name": "Expr", "initialSymbol": "E", … } ]
    }

The token definitions of the envelope are compiled into a lexmachine automaton,
which is attached to every grammar not carrying an automaton of its own.
Semantic actions are stored by identifier only and resolved through an
lr.ActionRegistry when reading.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammarfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/cfgkit/lr/scanner"
	"github.com/npillmayer/cfgkit/lr/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("cfgkit.lr")
}

// File is the in-memory form of a grammar file.
type File struct {
	Tokens   []lexmach.TokenDef
	Grammars []*lr.Grammar
}

type record struct {
	Tokens   []lexmach.TokenDef  `json:"tokens,omitempty"`
	Grammars []*lr.GrammarRecord `json:"grammars"`
}

// Grammar returns the grammar with a given name, or nil.
func (f *File) Grammar(name string) *lr.Grammar {
	for _, g := range f.Grammars {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Encode writes f as indented JSON.
func Encode(w io.Writer, f *File) error {
	rec := record{Tokens: f.Tokens}
	for _, g := range f.Grammars {
		grec, err := g.Record()
		if err != nil {
			return err
		}
		rec.Grammars = append(rec.Grammars, grec)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// Decode reads a grammar file. Actions are resolved by registry, which may be
// nil for grammars without actions.
func Decode(r io.Reader, registry *lr.ActionRegistry) (*File, error) {
	rec := record{}
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("malformed grammar file: %w", err)
	}
	f := &File{Tokens: rec.Tokens}
	var shared scanner.Automaton
	if len(rec.Tokens) > 0 {
		a, err := lexmach.Compile(rec.Tokens)
		if err != nil {
			return nil, fmt.Errorf("compiling tokens of grammar file: %w", err)
		}
		shared = a
	}
	for _, grec := range rec.Grammars {
		g, err := lr.FromRecord(grec, registry, lexmach.Load)
		if err != nil {
			return nil, err
		}
		if g.Automaton() == nil && shared != nil {
			g = g.WithAutomaton(shared)
		}
		tracer().Debugf("grammar file: loaded grammar %s with %d productions", g.Name, g.Size())
		f.Grammars = append(f.Grammars, g)
	}
	return f, nil
}

// ReadFile reads a grammar file from disk.
func ReadFile(path string, registry *lr.ActionRegistry) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Decode(fd, registry)
}

// WriteFile writes a grammar file to disk.
func WriteFile(path string, f *File) error {
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(fd, f); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
