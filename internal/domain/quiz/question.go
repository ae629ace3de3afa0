package quiz

import "errors"

var ErrMalformedQuestions = errors.New("malformed question list")

// Question is a multiple-choice quiz question as produced by the external
// generator. Answer holds the correct option verbatim.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// ValidateQuestions rejects empty lists and questions without text or
// options. An empty Answer is accepted: it can never be matched by a timeout
// and simply makes the question unanswerable-correctly unless an option is
// the empty string.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return ErrMalformedQuestions
	}
	for _, q := range questions {
		if q.Question == "" || len(q.Options) == 0 {
			return ErrMalformedQuestions
		}
	}
	return nil
}
