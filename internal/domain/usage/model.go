package usage

import (
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
)

// Record is a per-user, per-calendar-month AI generation counter row.
// Counters only grow within a month, except for an explicit admin reset.
type Record struct {
	ID                    int64     `json:"id"`
	UserID                int64     `json:"user_id"`
	Month                 int       `json:"month"` // 1-12
	Year                  int       `json:"year"`
	ResumesGenerated      int       `json:"resumes_generated"`
	CoverLettersGenerated int       `json:"cover_letters_generated"`
	InterviewGenerated    int       `json:"interview_generated"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// CountFor returns the consumed count for a category.
func (r *Record) CountFor(c plan.Category) int {
	switch c {
	case plan.CategoryResume:
		return r.ResumesGenerated
	case plan.CategoryCoverLetter:
		return r.CoverLettersGenerated
	case plan.CategoryInterview:
		return r.InterviewGenerated
	}
	return 0
}

// NearLimitThreshold is the usage ratio at which a category is flagged.
const NearLimitThreshold = 0.8

// CategoryUsage is the read-side view of one category for one user.
type CategoryUsage struct {
	Category  plan.Category `json:"category"`
	Used      int           `json:"used"`
	Quota     int           `json:"quota"`
	Remaining int           `json:"remaining"`
	NearLimit bool          `json:"near_limit"`
}

// Summary is the current-month usage of a user across all categories.
type Summary struct {
	UserID     int64           `json:"user_id"`
	PlanType   plan.Type       `json:"plan_type"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Categories []CategoryUsage `json:"categories"`
}

// NewCategoryUsage derives the read-side view for one category.
// Near-limit only applies to nonzero quotas.
func NewCategoryUsage(c plan.Category, used, quota int) CategoryUsage {
	remaining := quota - used
	if remaining < 0 {
		remaining = 0
	}
	return CategoryUsage{
		Category:  c,
		Used:      used,
		Quota:     quota,
		Remaining: remaining,
		NearLimit: quota > 0 && float64(used) >= NearLimitThreshold*float64(quota),
	}
}
