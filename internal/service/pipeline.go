// Package service orchestrates one pipeline run: load the glossary and
// report, count term frequencies, persist the frequency record, render the
// relationship graph, and optionally archive the run.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"vocabgraph/internal/codec"
	"vocabgraph/internal/config"
	"vocabgraph/internal/domain"
	"vocabgraph/internal/layout"
	"vocabgraph/internal/loader"
	"vocabgraph/internal/render"
	"vocabgraph/internal/repository"
	"vocabgraph/internal/scanner"
)

// ErrOutputWrite indicates an artifact destination could not be written.
// The record and image writes are independent; failure of one never stops
// the attempt at the other.
var ErrOutputWrite = errors.New("output write failed")

// Pipeline runs the scan end to end. History is optional; nil disables the
// run archive.
type Pipeline struct {
	cfg      *config.Config
	history  repository.Repository
	exporter codec.Exporter
}

// New creates a pipeline for the given configuration. The record format
// follows the stats path extension: .yaml/.yml selects YAML, anything else
// the conventional JSON.
func New(cfg *config.Config, history repository.Repository) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		history:  history,
		exporter: exporterFor(cfg.Paths.Stats),
	}
}

func exporterFor(path string) codec.Exporter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codec.NewYAMLCodec()
	default:
		return codec.NewJSONCodec()
	}
}

// Result summarizes one completed run
type Result struct {
	Catalog *domain.Catalog
	Record  *domain.FrequencyRecord
	RunID   string
}

// Run executes one full pipeline pass. Input errors abort before anything
// is written; a glossary with no term blocks proceeds with an empty catalog
// and an empty-but-well-formed record. Both artifact writes are attempted
// even if one fails, and all write errors are returned together.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	catalog, err := loader.LoadGlossary(p.cfg.Paths.Glossary, p.loaderOptions())
	if err != nil {
		return nil, err
	}
	if catalog.Len() == 0 {
		log.Printf("Glossary %s has no term blocks; proceeding with an empty catalog", p.cfg.Paths.Glossary)
	}

	prose, err := loader.LoadReport(p.cfg.Paths.Report)
	if err != nil {
		return nil, err
	}

	rec := scanner.Count(catalog, prose)
	log.Printf("Counted %d occurrences across %d terms", rec.Total(), rec.Len())

	statsErr := p.writeStats(rec)
	imageErr := p.writeImage(catalog, rec, prose)

	result := &Result{Catalog: catalog, Record: rec}
	if p.history != nil {
		run := repository.NewRun(p.cfg.Paths.Glossary, p.cfg.Paths.Report, rec)
		if err := p.history.RecordRun(ctx, run); err != nil {
			// the archive is supplementary; never fail the run for it
			log.Printf("Warning: failed to archive run: %v", err)
		} else {
			result.RunID = run.ID
		}
	}

	return result, errors.Join(statsErr, imageErr)
}

func (p *Pipeline) writeStats(rec *domain.FrequencyRecord) error {
	err := WriteFileAtomic(p.cfg.Paths.Stats, func(w io.Writer) error {
		return p.exporter.Export(rec, w)
	})
	if err != nil {
		return fmt.Errorf("%w: record %s: %v", ErrOutputWrite, p.cfg.Paths.Stats, err)
	}
	log.Printf("Wrote frequency record: %s", p.cfg.Paths.Stats)
	return nil
}

func (p *Pipeline) writeImage(catalog *domain.Catalog, rec *domain.FrequencyRecord, prose string) error {
	graph := scanner.DeriveGraph(catalog, rec, prose, p.graphOptions())
	positions := layout.Spring(graph, layout.DefaultConfig())
	opts := p.renderOptions()

	// render into memory first so a mid-render failure can fall back to
	// the placeholder without leaving partial bytes in the temp file
	var buf bytes.Buffer
	if renderErr := render.Render(graph, positions, opts, &buf); renderErr != nil {
		log.Printf("Warning: render failed, writing placeholder: %v", renderErr)
		buf.Reset()
		if phErr := render.Placeholder("rendering failed", opts, &buf); phErr != nil {
			return fmt.Errorf("%w: image %s: %v", ErrOutputWrite, p.cfg.Paths.Image, phErr)
		}
	}

	err := WriteFileAtomic(p.cfg.Paths.Image, func(w io.Writer) error {
		_, werr := w.Write(buf.Bytes())
		return werr
	})
	if err != nil {
		return fmt.Errorf("%w: image %s: %v", ErrOutputWrite, p.cfg.Paths.Image, err)
	}
	log.Printf("Wrote relationship graph: %s", p.cfg.Paths.Image)
	return nil
}

func (p *Pipeline) loaderOptions() loader.Options {
	return loader.Options{
		Aliases:  p.cfg.AliasesEnabled(),
		Variants: p.cfg.Match.Variants,
	}
}

func (p *Pipeline) graphOptions() scanner.GraphOptions {
	return scanner.GraphOptions{
		CenterLabel:  p.cfg.Graph.CenterLabel,
		CoOccurrence: p.cfg.CoOccurrenceEnabled(),
		IncludeZero:  p.cfg.IncludeZeroEnabled(),
		TopHighlight: p.cfg.TopHighlightCount(),
	}
}

func (p *Pipeline) renderOptions() render.Options {
	opts := render.DefaultOptions()
	if p.cfg.Graph.Title != "" {
		opts.Title = p.cfg.Graph.Title
	}
	return opts
}
