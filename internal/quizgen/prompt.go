package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz author. You create accurate, well-posed quiz questions and return them as JSON.

Rules:
- Return a single JSON object with a "questions" array and nothing else.
- Each question object has the fields "question", "options", "answer", "explanation".
- Multiple Choice: provide exactly 4 options without letter prefixes. Exactly one is correct. The answer is the letter of the correct option (A, B, C or D, where A is the first option). Distractors should reflect plausible misconceptions, not random values.
- True/False: leave options empty. The answer is "True" or "False".
- Open-ended: leave options empty. The answer is a short model answer.
- Every question must be self-contained and unambiguous.
- Questions must be distinct. Do not ask the same fact twice in different words.
- When source material is provided, base every question on that material only. Do not use outside knowledge to fill gaps.`

// buildUserMessage renders the request into the prompt's user message.
func buildUserMessage(req Request, cfg Config) string {
	var b strings.Builder

	if req.Mode == ModeURL && req.Source != "" {
		fmt.Fprintf(&b, "Create a quiz with exactly %d %s questions from the source material below.\n", req.NumQuestions, req.QuestionType)
		fmt.Fprintf(&b, "Source URL: %s\n", req.Subject)
	} else {
		fmt.Fprintf(&b, "Create a quiz with exactly %d %s questions on the topic below.\n", req.NumQuestions, req.QuestionType)
		fmt.Fprintf(&b, "Topic: %s\n", req.Subject)
	}

	if req.Difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n", req.Difficulty)
	}
	if req.Instructions != "" {
		fmt.Fprintf(&b, "Additional instructions: %s\n", req.Instructions)
	}

	if req.Mode == ModeURL && req.Source != "" {
		b.WriteString("\nSource material:\n")
		b.WriteString(truncate(req.Source, cfg.MaxSourceChars))
		b.WriteString("\n")
	}

	return b.String()
}

// truncate caps s at max bytes, cutting at the last space before the
// limit so the prompt does not end mid-word. max <= 0 means no cap.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := s[:max]
	if i := strings.LastIndexByte(cut, ' '); i > max/2 {
		cut = cut[:i]
	}
	return cut + " [truncated]"
}
