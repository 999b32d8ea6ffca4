package model

import (
	"encoding/json"
	"strings"
)

type MindMapKind string

const (
	MindMapDiagram MindMapKind = "diagram"
	MindMapTree    MindMapKind = "tree"
)

// MindMapNode is the legacy nested-tree shape.
type MindMapNode struct {
	Topic     string        `json:"topic"`
	Subtopics []MindMapNode `json:"subtopics,omitempty"`
}

// MindMap is a tagged variant: Markup is set for diagram maps, Tree for
// tree maps. Error is non-empty when the map is a placeholder.
type MindMap struct {
	Kind   MindMapKind  `json:"kind"`
	Markup string       `json:"markup,omitempty"`
	Tree   *MindMapNode `json:"tree,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func DiagramMindMap(markup string) MindMap {
	return MindMap{Kind: MindMapDiagram, Markup: markup}
}

func TreeMindMap(root MindMapNode) MindMap {
	return MindMap{Kind: MindMapTree, Tree: &root}
}

func ErrorMindMap(kind MindMapKind, msg string) MindMap {
	if kind == MindMapTree {
		return MindMap{
			Kind:  MindMapTree,
			Tree:  &MindMapNode{Topic: "Error", Subtopics: []MindMapNode{{Topic: msg}}},
			Error: msg,
		}
	}
	return MindMap{
		Kind:   MindMapDiagram,
		Markup: "mindmap\n  root((Error))\n    " + sanitizeDiagramLine(msg),
		Error:  msg,
	}
}

func (m MindMap) IsZero() bool {
	return m.Kind == "" || (m.Markup == "" && m.Tree == nil)
}

// ParseMindMap reads a mind map a client sent back. An explicit kind wins;
// without one a JSON object decoding to a tree is a tree and anything else
// is diagram markup.
func ParseMindMap(raw string, kind MindMapKind) (MindMap, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return MindMap{}, false
	}
	if kind == MindMapDiagram {
		return DiagramMindMap(text), true
	}
	if strings.HasPrefix(text, "{") {
		var node MindMapNode
		if err := json.Unmarshal([]byte(text), &node); err == nil && node.Topic != "" {
			return TreeMindMap(node), true
		}
	}
	if kind == MindMapTree {
		return MindMap{}, false
	}
	return DiagramMindMap(text), true
}

func sanitizeDiagramLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "(", "[")
	s = strings.ReplaceAll(s, ")", "]")
	return strings.TrimSpace(s)
}
