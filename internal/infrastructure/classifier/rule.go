package classifier

import (
	"context"
	"strings"
	"unicode/utf8"
)

const minFeedbackLen = 20

// Маркеры конструктивного фидбека: конкретика, предложения, объяснения.
var constructiveKeywords = []string{
	"suggest",
	"improve",
	"because",
	"consider",
	"would be better",
	"could",
	"should",
	"recommend",
	"specifically",
	"example",
	"however",
	"alternatively",
	"instead",
	"try",
	"next time",
}

// Маркеры шаблонной похвалы и брани без содержания.
var genericPatterns = []string{
	"good job",
	"nice work",
	"great",
	"awesome",
	"cool",
	"ok",
	"fine",
	"bad",
	"terrible",
	"sucks",
}

// RuleClassifier — детерминированный классификатор фидбека по словарям
// маркеров. Не требует внешних вызовов, работает как вариант по умолчанию.
type RuleClassifier struct{}

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify решает, конструктивен ли фидбек. Один и тот же текст всегда
// получает один и тот же вердикт.
func (c *RuleClassifier) Classify(_ context.Context, feedback string) (bool, string) {
	text := strings.ToLower(strings.TrimSpace(feedback))

	// Длина считается в рунах: кириллический текст не должен проходить
	// порог за счёт многобайтовых символов.
	if utf8.RuneCountInString(text) < minFeedbackLen {
		return false, "Feedback is too short to be constructive"
	}

	constructiveCount := countMatches(text, constructiveKeywords)
	genericCount := countMatches(text, genericPatterns)

	switch {
	case constructiveCount >= 2:
		return true, "Feedback contains constructive suggestions"
	case constructiveCount >= 1 && genericCount == 0:
		return true, "Feedback shows constructive intent"
	case genericCount > constructiveCount:
		return false, "Feedback appears to be generic praise or criticism"
	}

	// Нейтральный случай: решает развёрнутость текста.
	if len(strings.Fields(text)) >= 15 {
		return true, "Feedback is detailed enough to be constructive"
	}

	return false, "Feedback lacks specific actionable suggestions"
}

func countMatches(text string, patterns []string) int {
	count := 0
	for _, pattern := range patterns {
		if strings.Contains(text, pattern) {
			count++
		}
	}

	return count
}
