package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xxxsen/examprep/internal/document"
	"github.com/xxxsen/examprep/internal/model"
	appErr "github.com/xxxsen/examprep/internal/pkg/errors"
)

const defaultSubjectName = "Study Notes"

// ExportRequest carries notes the client already holds. MindMap may be the
// diagram markup as a string, a tree object, or a full tagged mind map.
type ExportRequest struct {
	Notes       string          `json:"notes"`
	SubjectName string          `json:"subject_name"`
	SubjectCode string          `json:"subject_code"`
	ExamType    string          `json:"exam_type"`
	MindMap     json.RawMessage `json:"mindmap"`
	MindMapKind string          `json:"mindmap_kind"`
}

type FlashcardExportRequest struct {
	SubjectName string            `json:"subject_name"`
	SubjectCode string            `json:"subject_code"`
	Flashcards  []model.Flashcard `json:"flashcards"`
}

type ExportService struct {
	assembler *document.Assembler
	htmlOpts  document.HTMLOptions
}

func NewExportService(assembler *document.Assembler, htmlOpts document.HTMLOptions) *ExportService {
	return &ExportService{assembler: assembler, htmlOpts: htmlOpts}
}

func (s *ExportService) Notes(ctx context.Context, req ExportRequest, format string) (*document.Document, error) {
	if strings.TrimSpace(req.Notes) == "" {
		return nil, appErr.Invalid("No notes provided")
	}
	in := document.Input{
		SubjectCode: strings.TrimSpace(req.SubjectCode),
		SubjectName: strings.TrimSpace(req.SubjectName),
		Scope:       ResolveScope(req.ExamType),
		Notes:       req.Notes,
		MindMap:     DecodeMindMap(req.MindMap, model.MindMapKind(strings.ToLower(strings.TrimSpace(req.MindMapKind)))),
	}
	if in.SubjectName == "" {
		in.SubjectName = defaultSubjectName
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "pdf":
		return s.assembler.Build(ctx, in)
	case "html":
		return document.BuildHTML(in, s.htmlOpts)
	case "markdown", "md":
		return document.BuildMarkdown(in), nil
	default:
		return nil, appErr.Invalid(fmt.Sprintf("unsupported export format: %s", format))
	}
}

func (s *ExportService) Flashcards(ctx context.Context, req FlashcardExportRequest) (*document.Document, error) {
	if len(req.Flashcards) == 0 {
		return nil, appErr.Invalid("No flashcards provided")
	}
	name := strings.TrimSpace(req.SubjectName)
	if name == "" {
		name = defaultSubjectName
	}
	return document.BuildFlashcardsXLSX(strings.TrimSpace(req.SubjectCode), name, req.Flashcards)
}

// DecodeMindMap accepts the shapes clients send back. Anything unusable is
// treated as no mind map.
func DecodeMindMap(raw json.RawMessage, kind model.MindMapKind) model.MindMap {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return model.MindMap{}
	}
	switch raw[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return model.MindMap{}
		}
		mm, _ := model.ParseMindMap(text, kind)
		return mm
	case '{':
		var tagged model.MindMap
		if err := json.Unmarshal(raw, &tagged); err == nil && tagged.Kind != "" && !tagged.IsZero() {
			return tagged
		}
	}
	mm, _ := model.ParseMindMap(string(raw), kind)
	return mm
}
