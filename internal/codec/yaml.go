package codec

import (
	"fmt"
	"io"
	"strconv"

	"vocabgraph/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec exports a frequency record as an ordered YAML mapping
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Export writes the record as YAML. A yaml.Node mapping is built by hand
// because Go maps would lose catalog order.
func (c *YAMLCodec) Export(rec *domain.FrequencyRecord, w io.Writer) error {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, tc := range rec.Counts {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: tc.Term},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(tc.Count)},
		)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(mapping); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
