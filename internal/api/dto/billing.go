package dto

// PlanDTO describes one purchasable plan tier
type PlanDTO struct {
	Type            string  `json:"type"`
	PriceAED        float64 `json:"priceAed"`
	BillingInterval string  `json:"billingInterval"`
	Resumes         int     `json:"resumes"`
	CoverLetters    int     `json:"coverLetters"`
	Interviews      int     `json:"interviews"`
}

// PlansResponse lists all plan tiers with live prices
type PlansResponse struct {
	Plans []PlanDTO `json:"plans"`
}

// SubscriptionDTO is the user-facing view of a subscription
type SubscriptionDTO struct {
	ID        int64   `json:"id"`
	PlanType  string  `json:"planType"`
	Status    string  `json:"status"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate,omitempty"`
}
