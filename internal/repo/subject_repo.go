package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xxxsen/examprep/internal/model"
	appErr "github.com/xxxsen/examprep/internal/pkg/errors"
)

type subjectRecord struct {
	Title   string         `json:"title" yaml:"title"`
	Name    string         `json:"name" yaml:"name"`
	Modules []model.Module `json:"modules" yaml:"modules"`
}

// SubjectRepo is a read-only keyed lookup over the subject and PYQ data
// files. With a zero ttl every call reads the files again.
type SubjectRepo struct {
	subjectsFile string
	pyqsFile     string
	subjects     *expirable.LRU[string, map[string]subjectRecord]
	pyqs         *expirable.LRU[string, map[string]model.PYQSet]
}

func NewSubjectRepo(subjectsFile, pyqsFile string, ttl time.Duration) *SubjectRepo {
	r := &SubjectRepo{subjectsFile: subjectsFile, pyqsFile: pyqsFile}
	if ttl > 0 {
		r.subjects = expirable.NewLRU[string, map[string]subjectRecord](1, nil, ttl)
		r.pyqs = expirable.NewLRU[string, map[string]model.PYQSet](1, nil, ttl)
	}
	return r
}

func (r *SubjectRepo) Get(ctx context.Context, code string) (*model.Subject, error) {
	all, err := r.loadSubjects(ctx)
	if err != nil {
		return nil, err
	}
	key, ok := lookupKey(all, code)
	if !ok {
		return nil, appErr.ErrNotFound
	}
	rec := all[key]
	return &model.Subject{Code: key, Name: rec.displayName(key), Modules: rec.Modules}, nil
}

func (r *SubjectRepo) List(ctx context.Context) ([]model.SubjectSummary, error) {
	all, err := r.loadSubjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.SubjectSummary, 0, len(all))
	for code, rec := range all {
		out = append(out, model.SubjectSummary{Code: code, Name: rec.displayName(code)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *SubjectRepo) Search(ctx context.Context, query string) ([]model.SubjectSummary, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items, nil
	}
	out := make([]model.SubjectSummary, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Code), q) || strings.Contains(strings.ToLower(item.Name), q) {
			out = append(out, item)
		}
	}
	return out, nil
}

// PYQs returns the question sets of one subject. A subject without an entry
// yields an empty set rather than an error.
func (r *SubjectRepo) PYQs(ctx context.Context, code string) (model.PYQSet, error) {
	all, err := r.loadPYQs(ctx)
	if err != nil {
		return nil, err
	}
	key, ok := lookupKey(all, code)
	if !ok || all[key] == nil {
		return model.PYQSet{}, nil
	}
	return all[key], nil
}

// PYQsFor narrows PYQs to one exam scope. A missing scope yields an empty
// JSON array.
func (r *SubjectRepo) PYQsFor(ctx context.Context, code string, scope model.ExamScope) (json.RawMessage, error) {
	set, err := r.PYQs(ctx, code)
	if err != nil {
		return nil, err
	}
	if raw, ok := set[string(scope)]; ok && len(raw) > 0 {
		return raw, nil
	}
	return json.RawMessage("[]"), nil
}

func (r *SubjectRepo) loadSubjects(ctx context.Context) (map[string]subjectRecord, error) {
	if r.subjects != nil {
		if cached, ok := r.subjects.Get(r.subjectsFile); ok {
			return cached, nil
		}
	}
	raw := map[string]subjectRecord{}
	if err := decodeDataFile(r.subjectsFile, &raw); err != nil {
		logutil.GetLogger(ctx).Error("load subjects failed", zap.String("file", r.subjectsFile), zap.Error(err))
		return nil, err
	}
	if r.subjects != nil {
		r.subjects.Add(r.subjectsFile, raw)
	}
	return raw, nil
}

func (r *SubjectRepo) loadPYQs(ctx context.Context) (map[string]model.PYQSet, error) {
	if r.pyqsFile == "" {
		return map[string]model.PYQSet{}, nil
	}
	if r.pyqs != nil {
		if cached, ok := r.pyqs.Get(r.pyqsFile); ok {
			return cached, nil
		}
	}
	raw := map[string]model.PYQSet{}
	if err := decodeDataFile(r.pyqsFile, &raw); err != nil {
		logutil.GetLogger(ctx).Error("load pyqs failed", zap.String("file", r.pyqsFile), zap.Error(err))
		return nil, err
	}
	if r.pyqs != nil {
		r.pyqs.Add(r.pyqsFile, raw)
	}
	return raw, nil
}

func (rec subjectRecord) displayName(code string) string {
	if name := strings.TrimSpace(rec.Title); name != "" {
		return name
	}
	if name := strings.TrimSpace(rec.Name); name != "" {
		return name
	}
	return code
}

// lookupKey prefers an exact code match and falls back to a
// case-insensitive one.
func lookupKey[V any](m map[string]V, code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	if _, ok := m[code]; ok {
		return code, true
	}
	for key := range m {
		if strings.EqualFold(key, code) {
			return key, true
		}
	}
	return "", false
}

func decodeDataFile(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read data file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		// re-encode through JSON so raw question payloads keep their shape
		var tree interface{}
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return fmt.Errorf("decode yaml data file: %w", err)
		}
		if data, err = json.Marshal(tree); err != nil {
			return fmt.Errorf("convert yaml data file: %w", err)
		}
		fallthrough
	default:
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("decode json data file: %w", err)
		}
	}
	return nil
}
