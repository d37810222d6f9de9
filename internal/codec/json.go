package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"vocabgraph/internal/domain"
)

// JSONCodec exports a frequency record as a single JSON object,
// term -> count, pretty-printed with 4-space indentation
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Export writes the record as JSON. Keys are emitted in record (catalog)
// order, which encoding/json cannot do for maps, so the object is built
// explicitly.
func (c *JSONCodec) Export(rec *domain.FrequencyRecord, w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("{")

	for i, tc := range rec.Counts {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(tc.Term)
		if err != nil {
			return fmt.Errorf("failed to encode term %q: %w", tc.Term, err)
		}
		buf.WriteString("\n    ")
		buf.Write(key)
		fmt.Fprintf(&buf, ": %d", tc.Count)
	}

	if rec.Len() > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// ParseRecord decodes a JSON record back into term counts, preserving the
// key order of the document. Used by tests and history tooling; the
// pipeline itself never reads its own output.
func ParseRecord(data []byte) (*domain.FrequencyRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("failed to parse JSON: expected object, got %v", tok)
	}

	rec := &domain.FrequencyRecord{Counts: make([]domain.TermCount, 0)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON key: %w", err)
		}
		term, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("failed to parse JSON: non-string key %v", keyTok)
		}

		var count int
		if err := dec.Decode(&count); err != nil {
			return nil, fmt.Errorf("failed to parse count for %q: %w", term, err)
		}
		rec.Counts = append(rec.Counts, domain.TermCount{Term: term, Count: count})
	}

	return rec, nil
}
