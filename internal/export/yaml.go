package export

import (
	"io"
	"strings"

	"github.com/iksnae/blueprint/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports a blueprint in YAML format
type YAMLExporter struct{}

// Export writes v as YAML. Mapping order follows the JSON key order.
func (e *YAMLExporter) Export(v internal.Value, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(toNode(v))
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}

// toNode converts a value into a YAML node tree
func toNode(v internal.Value) *yaml.Node {
	switch v.Kind() {
	case internal.KindBool:
		val := "false"
		if v.Bool() {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: val}
	case internal.KindNumber:
		tag := "!!int"
		if strings.ContainsAny(v.Raw(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Raw()}
	case internal.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}
	case internal.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, toNode(item))
		}
		return n
	case internal.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				toNode(m.Value),
			)
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
