package plan

// Type is the closed set of subscription plan tiers.
type Type string

const (
	Free           Type = "free"
	PayPerDownload Type = "pay_per_download"
	Pro            Type = "pro"
	Business       Type = "business"
)

// Category identifies one of the meterable AI feature groups.
type Category string

const (
	CategoryResume      Category = "resume"
	CategoryCoverLetter Category = "cover_letter"
	CategoryInterview   Category = "interview"
)

// Categories lists all meterable categories.
var Categories = []Category{CategoryResume, CategoryCoverLetter, CategoryInterview}

// Quota holds the fixed monthly generation allowances of a plan.
// A zero value means the category is unavailable on that plan, not unlimited.
type Quota struct {
	Resumes      int `json:"resumes"`
	CoverLetters int `json:"cover_letters"`
	Interviews   int `json:"interviews"`
}

// For returns the allowance for a single category.
func (q Quota) For(c Category) int {
	switch c {
	case CategoryResume:
		return q.Resumes
	case CategoryCoverLetter:
		return q.CoverLetters
	case CategoryInterview:
		return q.Interviews
	}
	return 0
}

// Quota returns the monthly allowances for the plan. Unknown plan strings
// fall back to the free tier.
func (t Type) Quota() Quota {
	switch t {
	case Pro:
		return Quota{Resumes: 40, CoverLetters: 40, Interviews: 30}
	case Business:
		return Quota{Resumes: 150, CoverLetters: 150, Interviews: 100}
	case Free, PayPerDownload:
		return Quota{Resumes: 2, CoverLetters: 2, Interviews: 0}
	}
	return Quota{Resumes: 2, CoverLetters: 2, Interviews: 0}
}

// Valid reports whether t is a known plan tier.
func (t Type) Valid() bool {
	switch t {
	case Free, PayPerDownload, Pro, Business:
		return true
	}
	return false
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryResume:
		return CategoryResume, true
	case CategoryCoverLetter:
		return CategoryCoverLetter, true
	case CategoryInterview:
		return CategoryInterview, true
	}
	return "", false
}

// Types lists all plan tiers in display order.
var Types = []Type{Free, PayPerDownload, Pro, Business}
