package models

// SubscriptionPlan is the parent account's billing tier
type SubscriptionPlan string

const (
	PlanFree    SubscriptionPlan = "free"
	PlanPlus    SubscriptionPlan = "plus"
	PlanPremium SubscriptionPlan = "premium"
)

// Valid reports whether the plan is one of the known tiers
func (p SubscriptionPlan) Valid() bool {
	return p == PlanFree || p == PlanPlus || p == PlanPremium
}

// User is the singleton parent account. It is not addressed by id; the user
// store holds at most one record.
type User struct {
	Email              string           `json:"email"`
	FullName           string           `json:"full_name"`
	Username           string           `json:"username,omitempty"`
	PasswordHash       string           `json:"password_hash,omitempty"`
	SubscriptionPlan   SubscriptionPlan `json:"subscription_plan,omitempty"`
	EmailNotifications bool             `json:"email_notifications"`
	PushNotifications  bool             `json:"push_notifications"`
	WeeklyReports      bool             `json:"weekly_reports"`
	AutoSaveHomework   bool             `json:"auto_save_homework"`
}
