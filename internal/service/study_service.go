package service

import (
	"context"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xxxsen/examprep/internal/ai"
	"github.com/xxxsen/examprep/internal/curriculum"
	"github.com/xxxsen/examprep/internal/extract"
	"github.com/xxxsen/examprep/internal/model"
	"github.com/xxxsen/examprep/internal/prompt"
	"github.com/xxxsen/examprep/internal/repo"
)

const (
	flashcardParseFailed = "Failed to parse flashcards. Please try again."
	mindMapParseFailed   = "Failed to parse mind map. Please try again."
)

type StudyConfig struct {
	MindMapFormat model.MindMapKind
	ScopePolicy   curriculum.Policy
}

// StudyContent is the blocking study payload. Either artifact may be a
// placeholder; the request itself still succeeds.
type StudyContent struct {
	SubjectName string             `json:"subject_name"`
	SubjectCode string             `json:"subject_code"`
	ExamType    model.ExamScope    `json:"exam_type"`
	Flashcards  model.FlashcardSet `json:"flashcards"`
	MindMap     model.MindMap      `json:"mindmap"`
}

type StudyService struct {
	subjects *repo.SubjectRepo
	client   *ai.Client
	cfg      StudyConfig
}

func NewStudyService(subjects *repo.SubjectRepo, client *ai.Client, cfg StudyConfig) *StudyService {
	if cfg.MindMapFormat == "" {
		cfg.MindMapFormat = model.MindMapDiagram
	}
	if cfg.ScopePolicy == "" {
		cfg.ScopePolicy = curriculum.PolicyAuto
	}
	return &StudyService{subjects: subjects, client: client, cfg: cfg}
}

// ResolveScope maps a request exam type to a scope. Unknown values fall back
// to semester.
func ResolveScope(examType string) model.ExamScope {
	scope, ok := model.ParseExamScope(examType)
	if !ok {
		return model.ScopeSemester
	}
	return scope
}

func (s *StudyService) prepare(ctx context.Context, code, examType string) (*model.Subject, model.ExamScope, prompt.Input, error) {
	subject, err := s.subjects.Get(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, "", prompt.Input{}, err
	}
	scope := ResolveScope(examType)
	in := prompt.Input{
		SubjectName: subject.Name,
		ScopeLabel:  scope.Title(),
		Modules:     curriculum.Scope(subject.Modules, scope, s.cfg.ScopePolicy),
	}
	return subject, scope, in, nil
}

// GenerateContent produces flashcards and the mind map concurrently.
// Generation failures become placeholders; only a cancelled caller context
// is returned as an error.
func (s *StudyService) GenerateContent(ctx context.Context, code, examType string) (*StudyContent, error) {
	subject, scope, in, err := s.prepare(ctx, code, examType)
	if err != nil {
		return nil, err
	}
	out := &StudyContent{SubjectName: subject.Name, SubjectCode: subject.Code, ExamType: scope}
	var g errgroup.Group
	g.Go(func() error {
		out.Flashcards = s.flashcards(ctx, in)
		return ctx.Err()
	})
	g.Go(func() error {
		out.MindMap = s.mindMap(ctx, in)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *StudyService) flashcards(ctx context.Context, in prompt.Input) model.FlashcardSet {
	logger := logutil.GetLogger(ctx).With(zap.String("subject", in.SubjectName))
	raw, err := s.client.Generate(ctx, prompt.Flashcards(in))
	if err != nil {
		logger.Error("generate flashcards failed", zap.Error(err))
		return model.ErrorFlashcards(ai.FallbackText("flashcard generation", err))
	}
	cards, err := extract.Flashcards(raw)
	if err != nil {
		logger.Warn("flashcard response unusable", zap.Error(err))
		return model.ErrorFlashcards(flashcardParseFailed)
	}
	return model.FlashcardSet{Cards: cards}
}

func (s *StudyService) mindMap(ctx context.Context, in prompt.Input) model.MindMap {
	logger := logutil.GetLogger(ctx).With(zap.String("subject", in.SubjectName), zap.String("format", string(s.cfg.MindMapFormat)))
	kind := s.cfg.MindMapFormat
	text := prompt.MindMap(in)
	if kind == model.MindMapTree {
		text = prompt.MindMapTree(in)
	}
	raw, err := s.client.Generate(ctx, text)
	if err != nil {
		logger.Error("generate mind map failed", zap.Error(err))
		return model.ErrorMindMap(kind, ai.FallbackText("mind map generation", err))
	}
	if kind == model.MindMapTree {
		node, err := extract.MindMapTree(raw)
		if err != nil {
			logger.Warn("mind map response unusable", zap.Error(err))
			return model.ErrorMindMap(kind, mindMapParseFailed)
		}
		return model.TreeMindMap(node)
	}
	markup, err := extract.MindMapDiagram(raw)
	if err != nil {
		logger.Warn("mind map response unusable", zap.Error(err))
		return model.ErrorMindMap(kind, mindMapParseFailed)
	}
	return model.DiagramMindMap(markup)
}

// NotesStream starts note generation. The subject name is returned so the
// caller can send it ahead of the content.
func (s *StudyService) NotesStream(ctx context.Context, code, examType string) (string, <-chan ai.Fragment, error) {
	subject, _, in, err := s.prepare(ctx, code, examType)
	if err != nil {
		return "", nil, err
	}
	return subject.Name, s.client.Stream(ctx, prompt.Notes(in), "notes generation"), nil
}

// Notes is the blocking variant; failures come back as fallback text.
func (s *StudyService) Notes(ctx context.Context, code, examType string) (*model.Subject, string, error) {
	subject, _, in, err := s.prepare(ctx, code, examType)
	if err != nil {
		return nil, "", err
	}
	return subject, s.client.GenerateText(ctx, prompt.Notes(in), "notes generation"), nil
}
