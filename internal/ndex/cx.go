package ndex

import (
	"encoding/json"
	"fmt"
	"os"
)

// rawAspect preserves an aspect this model does not interpret, such as
// cartesianLayout or cyVisualProperties, so round-tripping a file keeps
// them intact.
type rawAspect struct {
	Name string
	Data json.RawMessage
}

type cxNode struct {
	ID         int64  `json:"@id"`
	Name       string `json:"n"`
	Represents string `json:"r,omitempty"`
}

type cxEdge struct {
	ID          int64  `json:"@id"`
	Source      int64  `json:"s"`
	Target      int64  `json:"t"`
	Interaction string `json:"i,omitempty"`
}

type cxAttribute struct {
	PropertyOf *int64          `json:"po,omitempty"`
	Name       string          `json:"n"`
	Value      json.RawMessage `json:"v"`
	DataType   string          `json:"d,omitempty"`
}

type cxMetaData struct {
	Name         string `json:"name"`
	ElementCount int    `json:"elementCount"`
	Version      string `json:"version"`
}

// FromCX parses a classic CX document into a Network.
func FromCX(data []byte) (*Network, error) {
	var fragments []map[string]json.RawMessage
	if err := json.Unmarshal(data, &fragments); err != nil {
		return nil, fmt.Errorf("parse CX: %w", err)
	}

	net := NewNetwork("")
	for _, fragment := range fragments {
		for aspect, raw := range fragment {
			if err := net.readAspect(aspect, raw); err != nil {
				return nil, fmt.Errorf("aspect %s: %w", aspect, err)
			}
		}
	}
	return net, nil
}

func (n *Network) readAspect(aspect string, raw json.RawMessage) error {
	switch aspect {
	case "nodes":
		var nodes []cxNode
		if err := json.Unmarshal(raw, &nodes); err != nil {
			return err
		}
		for _, node := range nodes {
			n.nodes = append(n.nodes, Node{ID: node.ID, Name: node.Name, Represents: node.Represents})
			if node.ID >= n.nextNodeID {
				n.nextNodeID = node.ID + 1
			}
		}
	case "edges":
		var edges []cxEdge
		if err := json.Unmarshal(raw, &edges); err != nil {
			return err
		}
		for _, edge := range edges {
			n.edges = append(n.edges, Edge{ID: edge.ID, Source: edge.Source, Target: edge.Target, Interaction: edge.Interaction})
			if edge.ID >= n.nextEdgeID {
				n.nextEdgeID = edge.ID + 1
			}
		}
	case "nodeAttributes":
		return n.readAttributes(raw, n.nodeAttrs)
	case "edgeAttributes":
		return n.readAttributes(raw, n.edgeAttrs)
	case "networkAttributes":
		var attrs []cxAttribute
		if err := json.Unmarshal(raw, &attrs); err != nil {
			return err
		}
		for _, a := range attrs {
			value, err := decodeValue(a.Value, a.DataType)
			if err != nil {
				return err
			}
			if a.Name == "name" {
				if s, ok := value.(string); ok {
					n.name = s
				}
				continue
			}
			n.netAttrs = setAttr(n.netAttrs, a.Name, value, a.DataType)
		}
	case "numberVerification", "metaData", "status":
		// Regenerated on write.
	default:
		n.opaque = append(n.opaque, rawAspect{Name: aspect, Data: raw})
	}
	return nil
}

func (n *Network) readAttributes(raw json.RawMessage, dest map[int64][]Attribute) error {
	var attrs []cxAttribute
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return err
	}
	for _, a := range attrs {
		if a.PropertyOf == nil {
			continue
		}
		value, err := decodeValue(a.Value, a.DataType)
		if err != nil {
			return err
		}
		dest[*a.PropertyOf] = setAttr(dest[*a.PropertyOf], a.Name, value, a.DataType)
	}
	return nil
}

// decodeValue decodes an attribute value per its declared CX data type.
// An undeclared type means string.
func decodeValue(raw json.RawMessage, dataType string) (interface{}, error) {
	switch dataType {
	case "boolean":
		var v bool
		err := json.Unmarshal(raw, &v)
		return v, err
	case "double":
		var v float64
		err := json.Unmarshal(raw, &v)
		return v, err
	case "integer", "long":
		var v int64
		err := json.Unmarshal(raw, &v)
		return v, err
	case "list_of_string":
		var v []string
		err := json.Unmarshal(raw, &v)
		return v, err
	case "", "string":
		var v string
		err := json.Unmarshal(raw, &v)
		return v, err
	default:
		var v interface{}
		err := json.Unmarshal(raw, &v)
		return v, err
	}
}

// ToCX serializes the network as a classic CX document.
func (n *Network) ToCX() ([]byte, error) {
	nodes := make([]cxNode, 0, len(n.nodes))
	for _, node := range n.nodes {
		nodes = append(nodes, cxNode{ID: node.ID, Name: node.Name, Represents: node.Represents})
	}
	edges := make([]cxEdge, 0, len(n.edges))
	for _, edge := range n.edges {
		edges = append(edges, cxEdge{ID: edge.ID, Source: edge.Source, Target: edge.Target, Interaction: edge.Interaction})
	}

	netAttrs := []cxAttribute{{Name: "name", Value: mustMarshal(n.name), DataType: "string"}}
	for _, a := range n.netAttrs {
		netAttrs = append(netAttrs, cxAttribute{Name: a.Name, Value: mustMarshal(a.Value), DataType: a.DataType})
	}
	nodeAttrs := flattenAttributes(n.nodes, n.nodeAttrs)
	edgeAttrs := flattenEdgeAttributes(n.edges, n.edgeAttrs)

	meta := []cxMetaData{
		{Name: "nodes", ElementCount: len(nodes), Version: "1.0"},
		{Name: "edges", ElementCount: len(edges), Version: "1.0"},
		{Name: "networkAttributes", ElementCount: len(netAttrs), Version: "1.0"},
		{Name: "nodeAttributes", ElementCount: len(nodeAttrs), Version: "1.0"},
		{Name: "edgeAttributes", ElementCount: len(edgeAttrs), Version: "1.0"},
	}
	for _, op := range n.opaque {
		meta = append(meta, cxMetaData{Name: op.Name, Version: "1.0"})
	}

	fragments := []map[string]interface{}{
		{"numberVerification": []map[string]int64{{"longNumber": 281474976710655}}},
		{"metaData": meta},
		{"nodes": nodes},
		{"edges": edges},
		{"networkAttributes": netAttrs},
		{"nodeAttributes": nodeAttrs},
		{"edgeAttributes": edgeAttrs},
	}
	for _, op := range n.opaque {
		fragments = append(fragments, map[string]interface{}{op.Name: op.Data})
	}
	fragments = append(fragments, map[string]interface{}{
		"status": []map[string]interface{}{{"error": "", "success": true}},
	})
	return json.Marshal(fragments)
}

func flattenAttributes(nodes []Node, attrs map[int64][]Attribute) []cxAttribute {
	var out []cxAttribute
	for _, node := range nodes {
		id := node.ID
		for _, a := range attrs[id] {
			po := id
			out = append(out, cxAttribute{PropertyOf: &po, Name: a.Name, Value: mustMarshal(a.Value), DataType: a.DataType})
		}
	}
	return out
}

func flattenEdgeAttributes(edges []Edge, attrs map[int64][]Attribute) []cxAttribute {
	var out []cxAttribute
	for _, edge := range edges {
		id := edge.ID
		for _, a := range attrs[id] {
			po := id
			out = append(out, cxAttribute{PropertyOf: &po, Name: a.Name, Value: mustMarshal(a.Value), DataType: a.DataType})
		}
	}
	return out
}

func mustMarshal(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		// Attribute values are strings, bools, numbers, or string
		// lists; none of these can fail to marshal.
		return json.RawMessage(`""`)
	}
	return data
}

// LoadFile reads a CX file into a Network.
func LoadFile(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read network: %w", err)
	}
	return FromCX(data)
}

// SaveFile writes the network as a CX file.
func (n *Network) SaveFile(path string) error {
	data, err := n.ToCX()
	if err != nil {
		return fmt.Errorf("serialize network: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write network: %w", err)
	}
	return nil
}
