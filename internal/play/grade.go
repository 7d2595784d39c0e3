package play

import (
	"strings"

	"quizforge/internal/quizgen"
)

// Kind classifies how a saved question is presented and graded.
type Kind int

const (
	KindMultipleChoice Kind = iota
	KindTrueFalse
	KindOpenEnded
)

// kindOf infers the kind from the saved shape: options mean multiple
// choice, a True/False answer without options means true/false,
// anything else is open-ended. Saved files carry no explicit type tag.
func kindOf(q quizgen.Question) Kind {
	if len(q.Options) > 0 {
		return KindMultipleChoice
	}
	if strings.EqualFold(q.Answer, "True") || strings.EqualFold(q.Answer, "False") {
		return KindTrueFalse
	}
	return KindOpenEnded
}

// trueFalseOptions is the fixed option list shown for true/false
// questions.
var trueFalseOptions = []string{"True", "False"}

// trueFalseIndex returns the option index matching a True/False answer.
func trueFalseIndex(answer string) int {
	if strings.EqualFold(strings.TrimSpace(answer), "True") {
		return 0
	}
	return 1
}
