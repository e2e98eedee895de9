package setting

import "time"

// Setting is a runtime-toggleable key/value configuration entry. Values are
// stored as strings and interpreted contextually as booleans or numbers.
// Absence of a key is a valid state; callers supply defaults.
type Setting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description *string   `json:"description,omitempty"`
	UpdatedBy   int64     `json:"updated_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Well-known setting keys.
const (
	// KeyAIFeaturesEnabled is the master switch for all AI functionality.
	// Sub-flags refine individual features beneath it.
	KeyAIFeaturesEnabled = "ai_features_enabled"

	KeyCoverLetterAIEnabled        = "cover_letter_ai_enabled"
	KeyInterviewAIEnabled          = "interview_ai_enabled"
	KeyResumeAITailorEnabled       = "resume_ai_tailor_enabled"
	KeyResumeAISkillsEnabled       = "resume_ai_skills_enabled"
	KeyResumeAIExperienceEnabled   = "resume_ai_experience_enabled"

	KeyPriceProMonthly       = "price_pro_monthly"
	KeyPriceBusinessMonthly  = "price_business_monthly"
	KeyPricePayPerDownload   = "price_pay_per_download"
)

// TrueIsh reports whether a stored value reads as boolean true.
func TrueIsh(value string) bool {
	return value == "true" || value == "1"
}

// IsAISubFlag reports whether key is a per-feature AI toggle that the
// master flag may satisfy when the sub-flag was never set.
func IsAISubFlag(key string) bool {
	if key == KeyAIFeaturesEnabled {
		return false
	}
	switch key {
	case KeyCoverLetterAIEnabled, KeyInterviewAIEnabled,
		KeyResumeAITailorEnabled, KeyResumeAISkillsEnabled,
		KeyResumeAIExperienceEnabled:
		return true
	}
	return false
}
