package cmd

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/art-framework-suite/fhicl-go/fhiclparser"
)

// The yaml encoder works on yaml.Node directly so that the table's
// insertion order survives into the output.

func writeYaml(w io.Writer, t *fhiclparser.Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(tableNode(t))
}

func tableNode(t *fhiclparser.Table) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		n.Content = append(n.Content, scalarNode("!!str", k), valueNode(v))
	}
	return n
}

func valueNode(v fhiclparser.Value) *yaml.Node {
	switch v.Kind {
	case fhiclparser.NilKind:
		return scalarNode("!!null", "null")
	case fhiclparser.BoolKind:
		if v.Bool {
			return scalarNode("!!bool", "true")
		}
		return scalarNode("!!bool", "false")
	case fhiclparser.IntKind:
		return scalarNode("!!int", v.Int.String())
	case fhiclparser.FloatKind:
		return scalarNode("!!float", v.Float.String())
	case fhiclparser.SeqKind:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.Seq {
			n.Content = append(n.Content, valueNode(e))
		}
		return n
	case fhiclparser.TableKind:
		return tableNode(v.Table)
	default:
		// hex and sci stay verbatim; infinity, complex and anything else
		// render the way the text format would
		return scalarNode("!!str", v.String())
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
