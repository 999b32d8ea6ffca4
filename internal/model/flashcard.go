package model

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FlashcardSet is what the flashcard pipeline hands back. Placeholder marks
// a set that stands in for a failed generation or an unparseable response.
type FlashcardSet struct {
	Cards       []Flashcard `json:"cards"`
	Placeholder bool        `json:"placeholder"`
}

func ErrorFlashcards(msg string) FlashcardSet {
	return FlashcardSet{
		Cards:       []Flashcard{{Question: "Error", Answer: msg}},
		Placeholder: true,
	}
}
