// Package codec serializes frequency records for downstream consumers.
// Every codec emits record keys in catalog order; consumers render the
// record verbatim, so key order is part of the contract.
package codec

import (
	"io"

	"vocabgraph/internal/domain"
)

// Exporter interface for exporting frequency records to various formats
type Exporter interface {
	Export(rec *domain.FrequencyRecord, w io.Writer) error
	Format() string
}
