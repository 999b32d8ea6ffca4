package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/examprep/internal/model"
)

func sampleInput() Input {
	return Input{
		SubjectName: "Intro to CS",
		ScopeLabel:  "Internal1",
		Modules: []model.Module{
			{Number: 1, Name: "Basics", Topics: []string{"Bits", "Bytes"}},
			{RawID: "A", Name: "Extra", Topics: nil},
		},
	}
}

func TestModuleSummary(t *testing.T) {
	got := ModuleSummary(sampleInput().Modules)
	require.Equal(t, "Module 1: Basics - Topics: Bits, Bytes\nModule A: Extra - Topics: ", got)
	require.Equal(t, "", ModuleSummary(nil))
}

func TestPromptsAreDeterministic(t *testing.T) {
	builders := []func(Input) string{Notes, Flashcards, MindMap, MindMapTree}
	for _, build := range builders {
		require.Equal(t, build(sampleInput()), build(sampleInput()))
	}
	sched := ScheduleInput{Subjects: "OS, DBMS", StartDate: "2026-01-01", EndDate: "2026-01-10", HoursPerDay: 4}
	require.Equal(t, Schedule(sched), Schedule(sched))
	require.Equal(t, Chat("hi", ""), Chat("hi", ""))
	require.Equal(t, Answer("q", "c"), Answer("q", "c"))
}

func TestFlashcardsConstraints(t *testing.T) {
	p := Flashcards(sampleInput())
	require.Contains(t, p, "Create exactly 5 flashcards for Intro to CS Internal1 exam.")
	require.Contains(t, p, "Return ONLY a valid JSON array")
	require.Contains(t, p, "Module 1: Basics - Topics: Bits, Bytes")
}

func TestMindMapConstraints(t *testing.T) {
	p := MindMap(sampleInput())
	require.Contains(t, p, "Start with the literal word mindmap")
	require.Contains(t, p, "root((Intro to CS))")
	require.True(t, strings.HasPrefix(MindMapTree(sampleInput()), "Create a hierarchical mind map structure for Intro to CS Internal1"))
	require.Contains(t, MindMapTree(sampleInput()), `"topic": "Intro to CS"`)
}

func TestScheduleEmbedsInput(t *testing.T) {
	p := Schedule(ScheduleInput{Subjects: "OS", StartDate: "2026-01-01", EndDate: "2026-01-10", HoursPerDay: 3})
	require.Contains(t, p, "Subjects: OS\nStart Date: 2026-01-01\nExam Date: 2026-01-10\nStudy Hours per Day: 3")
}

func TestChatAndAnswer(t *testing.T) {
	require.Contains(t, Chat("what is paging", "Student: hi"), "Previous conversation:\nStudent: hi\n\nStudent: what is paging")
	require.Contains(t, Answer("why", "ctx"), "Context: ctx\n\nQuestion: why")
}
