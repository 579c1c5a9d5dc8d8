package enums

// ReviewStatus tracks whether a finished order is awaiting a review.
// The transition pending -> reviewed is one-way.
type ReviewStatus string

const (
	ReviewStatusNone     ReviewStatus = ""
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusReviewed ReviewStatus = "reviewed"
)
