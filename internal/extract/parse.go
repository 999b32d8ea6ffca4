package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xxxsen/examprep/internal/model"
)

const diagramKeyword = "mindmap"

// Flashcards extracts and validates a flashcard array. The card count is
// not enforced.
func Flashcards(raw string) ([]model.Flashcard, error) {
	text := JSONArray(raw)
	if err := validate("flashcards", []byte(text)); err != nil {
		return nil, fmt.Errorf("parse flashcards: %w", err)
	}
	var cards []model.Flashcard
	if err := json.Unmarshal([]byte(text), &cards); err != nil {
		return nil, fmt.Errorf("parse flashcards: %w", err)
	}
	return cards, nil
}

func MindMapTree(raw string) (model.MindMapNode, error) {
	text := JSONObject(raw)
	if err := validate("mindmap-tree", []byte(text)); err != nil {
		return model.MindMapNode{}, fmt.Errorf("parse mind map: %w", err)
	}
	var node model.MindMapNode
	if err := json.Unmarshal([]byte(text), &node); err != nil {
		return model.MindMapNode{}, fmt.Errorf("parse mind map: %w", err)
	}
	return node, nil
}

// MindMapDiagram extracts diagram markup and checks it opens with the
// mindmap keyword.
func MindMapDiagram(raw string) (string, error) {
	text := Diagram(raw)
	first := text
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		first = text[:nl]
	}
	if strings.TrimSpace(first) != diagramKeyword {
		return "", fmt.Errorf("parse mind map: markup does not start with %q", diagramKeyword)
	}
	return text, nil
}
