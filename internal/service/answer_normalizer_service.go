package service

import (
	"strings"
	"unicode"
)

// AnswerNormalizerService canonicalizes answer strings so that storage and
// comparison always agree: lowercase, with every non-alphanumeric character
// stripped. "  GI-RAFFE " and "giraffe" normalize to the same value.
type AnswerNormalizerService interface {
	Normalize(answer string) string
}

type answerNormalizerService struct{}

func NewAnswerNormalizerService() AnswerNormalizerService {
	return &answerNormalizerService{}
}

func (s *answerNormalizerService) Normalize(answer string) string {
	var b strings.Builder
	b.Grow(len(answer))
	for _, r := range answer {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
