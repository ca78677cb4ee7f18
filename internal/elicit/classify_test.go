package elicit_test

import (
	"testing"

	"github.com/parley-mcp/parley/internal/elicit"
	"github.com/parley-mcp/parley/internal/models"
)

func TestClassifyCategories(t *testing.T) {
	tests := []struct {
		message string
		want    models.ConfirmationType
	}{
		{"Please confirm the deployment", models.TypeConfirmation},
		{"CONFIRM DELETION OF 12 FILES", models.TypeConfirmation},
		{"Mohon konfirmasi pesanan ini", models.TypeConfirmation},
		{"この操作を確認してください", models.TypeConfirmation},
		{"Please rate your experience", models.TypeRating},
		{"What rating would you give?", models.TypeRating},
		{"Berikan nilai untuk layanan kami", models.TypeRating},
		{"サービスを評価してください", models.TypeRating},
		{"Could you clarify the requirements?", models.TypeClarification},
		{"Clarification needed on step 3", models.TypeClarification},
		{"Butuh klarifikasi tentang jadwal", models.TypeClarification},
		{"要件を明確にしてください", models.TypeClarification},
		{"Please verify the shipping address", models.TypeVerification},
		{"Verification of account details", models.TypeVerification},
		{"Mohon verifikasi alamat email", models.TypeVerification},
		{"入力内容を検証してください", models.TypeVerification},
		{"Continue with the upload? (yes/no)", models.TypeYesNo},
		{"Proceed? Y/N", models.TypeYesNo},
		{"Lanjutkan? ya/tidak", models.TypeYesNo},
		{"続行しますか？はい/いいえ", models.TypeYesNo},
		{"hello world", models.TypeCustom},
		{"What is your favorite color?", models.TypeCustom},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := elicit.Classify(tt.message); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	// several keywords present: the earliest rule in the priority
	// list decides
	tests := []struct {
		message string
		want    models.ConfirmationType
	}{
		{"confirm and rate the release", models.TypeConfirmation},
		{"rate this, then verify the total", models.TypeRating},
		{"clarify before you verify", models.TypeClarification},
		{"verify the answer (yes/no)", models.TypeVerification},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := elicit.Classify(tt.message); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}
