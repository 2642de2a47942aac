// Package ndex holds the network model and the NDEx server client. The
// model is a CX-backed property graph exposing the operations the
// annotation pipeline needs: node-name enumeration, edge creation, and
// typed attributes.
package ndex

import "strings"

// hgncPrefix is stripped from entries of the member node attribute.
const hgncPrefix = "hgnc.symbol:"

// memberAttribute is the node attribute listing a protein family's
// member names.
const memberAttribute = "member"

// Node is one network node.
type Node struct {
	ID         int64
	Name       string
	Represents string
}

// Edge is one network edge.
type Edge struct {
	ID          int64
	Source      int64
	Target      int64
	Interaction string
}

// Attribute is a typed attribute value. DataType follows CX declared
// types ("string", "boolean", "double", "list_of_string", ...).
type Attribute struct {
	Name     string
	Value    interface{}
	DataType string
}

// Network is an in-memory property graph round-tripped through CX.
type Network struct {
	name       string
	nodes      []Node
	edges      []Edge
	nodeAttrs  map[int64][]Attribute
	edgeAttrs  map[int64][]Attribute
	netAttrs   []Attribute
	opaque     []rawAspect
	nextNodeID int64
	nextEdgeID int64
}

// NewNetwork creates an empty network.
func NewNetwork(name string) *Network {
	return &Network{
		name:      name,
		nodeAttrs: make(map[int64][]Attribute),
		edgeAttrs: make(map[int64][]Attribute),
	}
}

// Name returns the network name.
func (n *Network) Name() string { return n.name }

// SetName renames the network.
func (n *Network) SetName(name string) { n.name = name }

// Nodes returns the nodes in declaration order.
func (n *Network) Nodes() []Node { return n.nodes }

// Edges returns the edges in declaration order.
func (n *Network) Edges() []Edge { return n.edges }

// AddNode adds a node and returns its id.
func (n *Network) AddNode(name string) int64 {
	id := n.nextNodeID
	n.nextNodeID++
	n.nodes = append(n.nodes, Node{ID: id, Name: name})
	return id
}

// CreateEdge adds an edge between two existing nodes and returns its id.
func (n *Network) CreateEdge(source, target int64, interaction string) int64 {
	id := n.nextEdgeID
	n.nextEdgeID++
	n.edges = append(n.edges, Edge{ID: id, Source: source, Target: target, Interaction: interaction})
	return id
}

// RemoveEdge deletes an edge and all of its attributes.
func (n *Network) RemoveEdge(id int64) {
	for i, e := range n.edges {
		if e.ID == id {
			n.edges = append(n.edges[:i], n.edges[i+1:]...)
			break
		}
	}
	delete(n.edgeAttrs, id)
}

// SetNodeAttribute sets a typed attribute on a node.
func (n *Network) SetNodeAttribute(node int64, name string, value interface{}, dataType string) {
	n.nodeAttrs[node] = setAttr(n.nodeAttrs[node], name, value, dataType)
}

// NodeAttribute returns a node attribute value, or nil when unset.
func (n *Network) NodeAttribute(node int64, name string) interface{} {
	return getAttr(n.nodeAttrs[node], name)
}

// SetEdgeString sets a string attribute on an edge.
func (n *Network) SetEdgeString(edge int64, name, value string) {
	n.edgeAttrs[edge] = setAttr(n.edgeAttrs[edge], name, value, "string")
}

// SetEdgeBool sets a boolean attribute on an edge.
func (n *Network) SetEdgeBool(edge int64, name string, value bool) {
	n.edgeAttrs[edge] = setAttr(n.edgeAttrs[edge], name, value, "boolean")
}

// SetEdgeDouble sets a double attribute on an edge.
func (n *Network) SetEdgeDouble(edge int64, name string, value float64) {
	n.edgeAttrs[edge] = setAttr(n.edgeAttrs[edge], name, value, "double")
}

// EdgeAttribute returns an edge attribute value, or nil when unset.
func (n *Network) EdgeAttribute(edge int64, name string) interface{} {
	return getAttr(n.edgeAttrs[edge], name)
}

// SetNetworkAttribute sets a network-level attribute.
func (n *Network) SetNetworkAttribute(name string, value interface{}, dataType string) {
	n.netAttrs = setAttr(n.netAttrs, name, value, dataType)
}

// NetworkAttribute returns a network-level attribute value, or nil.
func (n *Network) NetworkAttribute(name string) interface{} {
	return getAttr(n.netAttrs, name)
}

// NodeNameIndex maps every node name to its node id. Family-member
// names from the member node attribute map to the family node, with the
// hgnc.symbol: prefix stripped.
func (n *Network) NodeNameIndex() map[string]int64 {
	index := make(map[string]int64, len(n.nodes))
	for _, node := range n.nodes {
		for _, member := range n.FamilyMembers(node.ID) {
			index[member] = node.ID
		}
		index[node.Name] = node.ID
	}
	return index
}

// FamilyMembers returns the member names of a protein family node, or
// nil when the node has no member attribute.
func (n *Network) FamilyMembers(node int64) []string {
	v := n.NodeAttribute(node, memberAttribute)
	entries, ok := v.([]string)
	if !ok {
		return nil
	}
	members := make([]string, 0, len(entries))
	for _, entry := range entries {
		members = append(members, strings.TrimPrefix(entry, hgncPrefix))
	}
	return members
}

func setAttr(attrs []Attribute, name string, value interface{}, dataType string) []Attribute {
	for i := range attrs {
		if attrs[i].Name == name {
			attrs[i].Value = value
			attrs[i].DataType = dataType
			return attrs
		}
	}
	return append(attrs, Attribute{Name: name, Value: value, DataType: dataType})
}

func getAttr(attrs []Attribute, name string) interface{} {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return nil
}
