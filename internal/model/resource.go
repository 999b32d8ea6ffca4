package model

import "encoding/json"

type ResourceLink struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

type Certification struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Category string `json:"category"`
}

type Resources struct {
	Links          []ResourceLink  `json:"links"`
	Certifications []Certification `json:"certifications"`
}

// PYQSet holds previous year questions keyed by exam scope. Question
// payloads are kept as raw JSON because their shape varies per subject.
type PYQSet map[string]json.RawMessage

type StudySession struct {
	Duration  int    `json:"duration"`
	Timestamp string `json:"timestamp"`
	Subject   string `json:"subject"`
}
