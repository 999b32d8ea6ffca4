package stream

// Frame is one self-contained event delivered to the client. Exactly one
// field is set.
type Frame struct {
	Text        string `json:"text,omitempty"`
	Done        bool   `json:"done,omitempty"`
	Error       string `json:"error,omitempty"`
	SubjectName string `json:"subject_name,omitempty"`
}

func TextFrame(text string) Frame {
	return Frame{Text: text}
}

func DoneFrame() Frame {
	return Frame{Done: true}
}

func ErrorFrame(msg string) Frame {
	return Frame{Error: msg}
}

func SubjectFrame(name string) Frame {
	return Frame{SubjectName: name}
}
