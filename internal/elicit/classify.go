package elicit

import (
	"strings"

	"github.com/parley-mcp/parley/internal/models"
)

// classifierRule binds message keywords to one confirmation type.
// Rules are checked in order and the first match wins, so the order
// below is a priority list, not an arbitrary grouping.
type classifierRule struct {
	keywords []string
	category models.ConfirmationType
}

var classifierRules = []classifierRule{
	// confirmation: action approval before something happens
	{[]string{"confirm", "konfirmasi", "確認"}, models.TypeConfirmation},
	// rating: numeric feedback collection
	{[]string{"rate", "rating", "nilai", "評価"}, models.TypeRating},
	// clarification: the agent needs more detail to continue
	{[]string{"clarify", "clarification", "klarifikasi", "明確"}, models.TypeClarification},
	// verification: checking recorded information is accurate
	{[]string{"verify", "verification", "verifikasi", "検証"}, models.TypeVerification},
	// yes_no: binary questions
	{[]string{"yes/no", "y/n", "ya/tidak", "はい/いいえ"}, models.TypeYesNo},
}

// Classify infers the confirmation type from a request message using
// case-insensitive substring search. Messages matching no rule are
// custom.
func Classify(message string) models.ConfirmationType {
	lower := strings.ToLower(message)
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return models.TypeCustom
}
