package domain

// MembershipTier is a user's account level governing quota limits.
type MembershipTier string

const (
	TierFree  MembershipTier = "free"
	TierPaid  MembershipTier = "paid"
	TierAdmin MembershipTier = "admin"
)

// TrustTier is the ordinal reputation classification of a reporter.
// verified is assigned out-of-band, never by score threshold.
type TrustTier string

const (
	TrustUnverified TrustTier = "unverified"
	TrustNew        TrustTier = "new"
	TrustTrusted    TrustTier = "trusted"
	TrustVerified   TrustTier = "verified"
)

// User is an account as the engine sees it.
type User struct {
	ID          UserID         `json:"id"`
	DisplayName string         `json:"displayName"`
	Tier        MembershipTier `json:"tier"`
	CreatedAt   int64          `json:"createdAt"`
}

// Reputation is a user's accumulated reputation record. ManualTier, when
// set, overrides threshold-based tier resolution (manual elevation to
// verified, or a moderator hold).
type Reputation struct {
	UserID     UserID    `json:"userId"`
	Score      int       `json:"score"`
	ManualTier TrustTier `json:"manualTier,omitempty"`
	UpdatedAt  int64     `json:"updatedAt"`
}

// PrivacySettings gates personalization and location use during ranking.
// Both flags default to false when no record exists.
type PrivacySettings struct {
	UserID                UserID `json:"userId"`
	EnablePersonalization bool   `json:"enablePersonalization"`
	EnableLocationSharing bool   `json:"enableLocationSharing"`
}

// CategoryInteraction accumulates a user's engagement with one category.
type CategoryInteraction struct {
	UserID            UserID     `json:"userId"`
	CategoryID        CategoryID `json:"categoryId"`
	ClickCount        int        `json:"clickCount"`
	SubscriptionCount int        `json:"subscriptionCount"`
}

// Weight is the preference weight used to pick a user's top categories.
func (ci CategoryInteraction) Weight() int {
	return ci.ClickCount + ci.SubscriptionCount*2
}
