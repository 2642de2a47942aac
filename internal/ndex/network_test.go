package ndex

import "testing"

func TestNetwork_NodeNameIndex(t *testing.T) {
	net := NewNetwork("test")
	a := net.AddNode("BRAF")
	b := net.AddNode("MAP2K1")

	index := net.NodeNameIndex()

	if len(index) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(index))
	}
	if index["BRAF"] != a || index["MAP2K1"] != b {
		t.Errorf("unexpected index: %v", index)
	}
}

func TestNetwork_NodeNameIndex_FamilyMembers(t *testing.T) {
	net := NewNetwork("test")
	family := net.AddNode("RAF")
	other := net.AddNode("MAP2K1")
	net.SetNodeAttribute(family, "member",
		[]string{"hgnc.symbol:ARAF", "hgnc.symbol:BRAF", "RAF1"}, "list_of_string")

	index := net.NodeNameIndex()

	for _, name := range []string{"ARAF", "BRAF", "RAF1"} {
		if index[name] != family {
			t.Errorf("member %s should map to family node %d, got %d", name, family, index[name])
		}
	}
	if index["RAF"] != family {
		t.Error("family node's own name should be indexed")
	}
	if index["MAP2K1"] != other {
		t.Error("plain node should be indexed")
	}
}

func TestNetwork_FamilyMembers_NoAttribute(t *testing.T) {
	net := NewNetwork("test")
	id := net.AddNode("BRAF")

	if members := net.FamilyMembers(id); members != nil {
		t.Errorf("expected nil for node without member attribute, got %v", members)
	}
}

func TestNetwork_RemoveEdge(t *testing.T) {
	net := NewNetwork("test")
	a := net.AddNode("A")
	b := net.AddNode("B")
	e1 := net.CreateEdge(a, b, "interacts with")
	e2 := net.CreateEdge(b, a, "interacts with")
	net.SetEdgeString(e1, "__edge_source", "INDRA")

	net.RemoveEdge(e1)

	if len(net.Edges()) != 1 {
		t.Fatalf("expected 1 edge left, got %d", len(net.Edges()))
	}
	if net.Edges()[0].ID != e2 {
		t.Errorf("wrong edge removed: %d", net.Edges()[0].ID)
	}
	if net.EdgeAttribute(e1, "__edge_source") != nil {
		t.Error("removed edge's attributes should be gone")
	}
}

func TestNetwork_AttributeOverwrite(t *testing.T) {
	net := NewNetwork("test")
	a := net.AddNode("A")
	b := net.AddNode("B")
	e := net.CreateEdge(a, b, "interacts with")

	net.SetEdgeDouble(e, "__relationship_score", 1.5)
	net.SetEdgeDouble(e, "__relationship_score", 2.5)

	if v := net.EdgeAttribute(e, "__relationship_score"); v != 2.5 {
		t.Errorf("expected overwritten value 2.5, got %v", v)
	}
}

func TestNetwork_NetworkAttributes(t *testing.T) {
	net := NewNetwork("test")

	net.SetNetworkAttribute("description", "a network", "string")

	if v := net.NetworkAttribute("description"); v != "a network" {
		t.Errorf("expected description, got %v", v)
	}
	if v := net.NetworkAttribute("missing"); v != nil {
		t.Errorf("expected nil for unset attribute, got %v", v)
	}
}
