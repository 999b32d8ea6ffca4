package model

import "strings"

type ExamScope string

const (
	ScopeInternal1 ExamScope = "internal1"
	ScopeInternal2 ExamScope = "internal2"
	ScopeInternal3 ExamScope = "internal3"
	ScopeSemester  ExamScope = "semester"
)

var AllScopes = []ExamScope{ScopeInternal1, ScopeInternal2, ScopeInternal3, ScopeSemester}

// ParseExamScope accepts the request value case-insensitively. Empty input
// means semester; anything else unknown is reported with ok=false.
func ParseExamScope(s string) (ExamScope, bool) {
	v := ExamScope(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return ScopeSemester, true
	}
	for _, item := range AllScopes {
		if item == v {
			return v, true
		}
	}
	return v, false
}

// Label is the compact form used in download filenames.
func (s ExamScope) Label() string {
	switch s {
	case ScopeInternal1:
		return "Internal1"
	case ScopeInternal2:
		return "Internal2"
	case ScopeInternal3:
		return "Internal3"
	case ScopeSemester:
		return "Semester"
	default:
		return string(s)
	}
}

// Title is the human readable form used in prompts and document titles.
func (s ExamScope) Title() string {
	switch s {
	case ScopeInternal1:
		return "Internal Assessment 1"
	case ScopeInternal2:
		return "Internal Assessment 2"
	case ScopeInternal3:
		return "Internal Assessment 3"
	case ScopeSemester:
		return "Semester"
	default:
		return string(s)
	}
}
