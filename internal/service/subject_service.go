package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/xxxsen/examprep/internal/model"
	appErr "github.com/xxxsen/examprep/internal/pkg/errors"
	"github.com/xxxsen/examprep/internal/repo"
)

type PYQResult struct {
	SubjectName string          `json:"subject_name"`
	PYQs        json.RawMessage `json:"pyqs"`
}

type SubjectService struct {
	subjects  *repo.SubjectRepo
	resources *repo.ResourceRepo
}

func NewSubjectService(subjects *repo.SubjectRepo, resources *repo.ResourceRepo) *SubjectService {
	return &SubjectService{subjects: subjects, resources: resources}
}

func (s *SubjectService) List(ctx context.Context, query string) ([]model.SubjectSummary, error) {
	if strings.TrimSpace(query) != "" {
		return s.subjects.Search(ctx, query)
	}
	return s.subjects.List(ctx)
}

// PYQs returns one scope's questions when examType is set, else every scope.
// An unknown subject still answers with its code as the name.
func (s *SubjectService) PYQs(ctx context.Context, code, examType string) (*PYQResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, appErr.Invalid("Please provide subject code")
	}
	name := code
	subject, err := s.subjects.Get(ctx, code)
	switch {
	case err == nil:
		name = subject.Name
	case !appErr.IsNotFound(err):
		return nil, err
	}
	var raw json.RawMessage
	if strings.TrimSpace(examType) != "" {
		raw, err = s.subjects.PYQsFor(ctx, code, ResolveScope(examType))
	} else {
		var set model.PYQSet
		if set, err = s.subjects.PYQs(ctx, code); err == nil {
			raw, err = json.Marshal(set)
		}
	}
	if err != nil {
		return nil, err
	}
	return &PYQResult{SubjectName: name, PYQs: raw}, nil
}

func (s *SubjectService) Resources(ctx context.Context) model.Resources {
	return s.resources.All()
}
