// Package repository defines the persistence interface for the run-history
// archive.
//
// The archive is a side artifact: every pipeline run may append one row per
// execution plus one row per term count, giving a queryable record of how
// vocabulary usage evolved across report revisions. The pipeline's two
// primary artifacts (the JSON record and the PNG image) never depend on it,
// and it is disabled entirely when no history path is configured.
//
// The sqlite subpackage provides the only implementation.
package repository
