// Package prompt renders the instruction text sent to the generation backend.
// Every function is pure: identical input yields a byte-identical prompt.
package prompt

import (
	"fmt"
	"strings"

	"github.com/xxxsen/examprep/internal/model"
)

// FlashcardCount is the number of cards requested per set.
const FlashcardCount = 5

// Input carries the subject data a content prompt is built from.
type Input struct {
	SubjectName string
	ScopeLabel  string
	Modules     []model.Module
}

// ModuleSummary formats modules as "Module N: name - Topics: a, b", one per line.
func ModuleSummary(modules []model.Module) string {
	lines := make([]string, 0, len(modules))
	for _, m := range modules {
		lines = append(lines, fmt.Sprintf("Module %s: %s - Topics: %s", m.DisplayID(), m.Name, strings.Join(m.Topics, ", ")))
	}
	return strings.Join(lines, "\n")
}

func Notes(in Input) string {
	return fmt.Sprintf(`Generate comprehensive study notes for %[1]s focusing on %[2]s exam.

Subject: %[1]s
Modules covered:
%[3]s

Please provide:
1. Key concepts and definitions
2. Important formulas and algorithms (if applicable)
3. Real-world examples and applications
4. Important points to remember
5. Common mistakes to avoid

Format the response in markdown with clear headings (#, ##, ###), bullet points, numbered lists and code blocks where applicable.
Cover every module listed above.
Make it comprehensive but concise, suitable for exam preparation.`, in.SubjectName, in.ScopeLabel, ModuleSummary(in.Modules))
}

func Flashcards(in Input) string {
	return fmt.Sprintf(`Create exactly %[4]d flashcards for %[1]s %[2]s exam.

Subject: %[1]s
Modules:
%[3]s

Generate flashcards covering:
- Important concepts and definitions
- Key formulas and algorithms
- Important facts and figures
- Common interview questions

Return ONLY a valid JSON array with this exact format (no additional text):
[
  {"question": "What is...", "answer": "..."},
  {"question": "Explain...", "answer": "..."}
]

The array must contain exactly %[4]d objects. Make sure questions are clear and answers are concise but complete.`, in.SubjectName, in.ScopeLabel, ModuleSummary(in.Modules), FlashcardCount)
}

// MindMap asks for mermaid mindmap markup.
func MindMap(in Input) string {
	return fmt.Sprintf(`Create a mind map for %[1]s %[2]s topics using Mermaid mindmap syntax.

Subject: %[1]s
Modules:
%[3]s

Rules:
- Start with the literal word mindmap on the first line.
- Use a single root node: root((%[1]s)).
- Add one child per module and nest the key topics below each module using indentation.
- Do not use parentheses, brackets or quotes inside node text.
- Return ONLY the mindmap markup (no additional text, no code fences).`, in.SubjectName, in.ScopeLabel, ModuleSummary(in.Modules))
}

// MindMapTree asks for the nested JSON tree variant.
func MindMapTree(in Input) string {
	return fmt.Sprintf(`Create a hierarchical mind map structure for %[1]s %[2]s topics.

Subject: %[1]s
Modules:
%[3]s

Return ONLY a valid JSON structure with this exact format (no additional text):
{
  "topic": "%[1]s",
  "subtopics": [
    {
      "topic": "Module 1 Name",
      "subtopics": [
        {"topic": "Subtopic 1"},
        {"topic": "Subtopic 2"}
      ]
    }
  ]
}

Create a comprehensive hierarchical structure covering all important topics.`, in.SubjectName, in.ScopeLabel, ModuleSummary(in.Modules))
}

// ScheduleInput describes a requested study plan. Dates are YYYY-MM-DD.
type ScheduleInput struct {
	Subjects    string
	StartDate   string
	EndDate     string
	HoursPerDay int
}

func Schedule(in ScheduleInput) string {
	return fmt.Sprintf(`Create a detailed study schedule for the following:

Subjects: %s
Start Date: %s
Exam Date: %s
Study Hours per Day: %d

Please create a day-by-day study plan that includes:
1. Topics to cover each day for each subject
2. Time allocation for each subject
3. Regular breaks (Pomodoro technique recommended)
4. Revision days before the exam
5. Practice/mock test days

Format the schedule clearly in markdown with dates, subjects, topics, and time slots.
Every day from the start date to the exam date must appear exactly once.
Make it realistic and achievable.`, in.Subjects, in.StartDate, in.EndDate, in.HoursPerDay)
}

func Answer(question, context string) string {
	return fmt.Sprintf(`You are a helpful study assistant. Answer the following question based on the context provided.

Context: %s

Question: %s

Provide a clear, concise, and accurate answer. Include examples if helpful.`, context, question)
}

func Chat(message, history string) string {
	return fmt.Sprintf(`You are a helpful AI study assistant. Help the student with their question.

Previous conversation:
%s

Student: %s

Provide a helpful, encouraging, and educational response.`, history, message)
}
