package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/examprep/internal/model"
)

func TestJSONArrayFencedWithNoise(t *testing.T) {
	in := "prefix-noise ```json [ {\"a\":1} ] ``` trailing-noise"
	require.Equal(t, `[ {"a":1} ]`, JSONArray(in))
}

func TestJSONArrayCases(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "already array", in: "  [1, 2] trailing ", want: "[1, 2] trailing"},
		{name: "bare fence", in: "```\n[1]\n```", want: "[1]"},
		{name: "no delimiters", in: "  just some prose \n", want: "just some prose"},
		{name: "empty", in: "   ", want: ""},
		{name: "reversed delimiters", in: "```a ] b [```", want: "```a ] b [```"},
		{name: "nested last close", in: "x ```[[1],[2]]``` y", want: "[[1],[2]]"},
		{name: "unfenced prose kept raw", in: "Sure! Here you go: [{\"a\":1}] Hope that helps [1]", want: "Sure! Here you go: [{\"a\":1}] Hope that helps [1]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, JSONArray(tc.in))
		})
	}
}

func TestJSONObject(t *testing.T) {
	require.Equal(t, `{"topic":"x"}`, JSONObject("Here you go:\n```json\n{\"topic\":\"x\"}\n```"))
	require.Equal(t, "no braces here", JSONObject(" no braces here "))
}

func TestDiagram(t *testing.T) {
	require.Equal(t, "mindmap\n  root((OS))", Diagram("Sure!\n```mermaid\nmindmap\n  root((OS))\n```\nEnjoy"))
	require.Equal(t, "mindmap\n  root((OS))", Diagram("```\nmindmap\n  root((OS))\n```"))
	require.Equal(t, "mindmap\n  root((OS))", Diagram("  mindmap\n  root((OS))  "))
	require.Equal(t, "mindmap\n  a", Diagram("```mermaid\nmindmap\n  a"))
}

func TestFlashcards(t *testing.T) {
	cards, err := Flashcards("```json\n[{\"question\":\"Q1\",\"answer\":\"A1\"}]\n```")
	require.NoError(t, err)
	require.Equal(t, []model.Flashcard{{Question: "Q1", Answer: "A1"}}, cards)

	_, err = Flashcards("I cannot help with that.")
	require.Error(t, err)

	_, err = Flashcards(`[{"answer":"missing question"}]`)
	require.Error(t, err)

	_, err = Flashcards(`[]`)
	require.Error(t, err)
}

func TestMindMapTree(t *testing.T) {
	node, err := MindMapTree("noise ```json\n{\"topic\":\"OS\",\"subtopics\":[{\"topic\":\"Memory\",\"subtopics\":[{\"topic\":\"Paging\"}]}]}\n``` noise")
	require.NoError(t, err)
	require.Equal(t, "OS", node.Topic)
	require.Equal(t, "Paging", node.Subtopics[0].Subtopics[0].Topic)

	_, err = MindMapTree(`Here: {"topic":"OS"}`)
	require.Error(t, err)
	_, err = MindMapTree(`{"subtopics":[]}`)
	require.Error(t, err)
	_, err = MindMapTree(`{"topic":"OS","subtopics":[{"name":"bad"}]}`)
	require.Error(t, err)
}

func TestMindMapDiagram(t *testing.T) {
	markup, err := MindMapDiagram("```mermaid\nmindmap\n  root((OS))\n```")
	require.NoError(t, err)
	require.Equal(t, "mindmap\n  root((OS))", markup)

	_, err = MindMapDiagram("graph TD\n A-->B")
	require.Error(t, err)
}
