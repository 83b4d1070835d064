// Package fhicl parses and evaluates FHiCL (Fermilab Hierarchical
// Configuration Language) documents into fully resolved parameter tables.
//
// Parsing is a one-shot batch operation: includes are expanded textually,
// prologs are framed off, prolog and body are parsed by one unified grammar,
// and every @local::/@db:: reference and hname override is applied while the
// tree is built. The resolved table contains no references and no
// hierarchical keys.
package fhicl

import (
	"github.com/art-framework-suite/fhicl-go/fhiclparser"
	"github.com/sirupsen/logrus"
)

// Document is the result of a full parse: the resolved body table and the
// resolved prolog scope. Prolog bindings are visible to references but do
// not appear in Table.
type Document struct {
	Table  *fhiclparser.Table
	Prolog *fhiclparser.Table
}

// Parse runs the whole pipeline over text and returns the resolved
// parameter table. An empty, comments-only or prolog-only document yields
// an empty table. On error the table is nil and the error is a
// *fhiclparser.Error carrying the failure kind and position.
func Parse(text string, loader Loader) (*fhiclparser.Table, error) {
	doc, err := ParseDocument(text, loader, nil)
	if err != nil {
		return nil, err
	}
	return doc.Table, nil
}

// ParseDocument is Parse with the prolog scope kept, and an optional logger
// for the diagnostics the core only surfaces at debug level (dropped hname
// overrides). A nil log discards them.
func ParseDocument(text string, loader Loader, log logrus.FieldLogger) (*Document, error) {
	expanded, err := expandIncludes(text, loader)
	if err != nil {
		return nil, err
	}
	prologText, bodyText, err := splitProlog(expanded)
	if err != nil {
		return nil, err
	}
	// The prolog builds first, against itself: its references resolve
	// within the prolog scope only.
	prolog, err := fhiclparser.Build("", prologText, nil, log)
	if err != nil {
		return nil, err
	}
	body, err := fhiclparser.Build("", bodyText, prolog, log)
	if err != nil {
		return nil, err
	}
	return &Document{Table: body, Prolog: prolog}, nil
}

// ParseFile reads filename through the loader and parses it, so the
// document and its includes resolve through one mechanism.
func ParseFile(filename string, loader Loader) (*fhiclparser.Table, error) {
	text, err := loader(filename)
	if err != nil {
		return nil, err
	}
	return Parse(text, loader)
}
