package enums

// ActivityType labels entries in the account activity log.
type ActivityType string

const (
	ActivityOrderPlaced    ActivityType = "Order Placed"
	ActivityOrderTracking  ActivityType = "Order Tracking"
	ActivityStatusUpdate   ActivityType = "Order Status Update"
	ActivityOrderFinalized ActivityType = "Order Finalized"
	ActivityProfileUpdate  ActivityType = "Profile Update"
	ActivityReviewSubmit   ActivityType = "Review Submitted"
	ActivityCartUpdate     ActivityType = "Cart Update"
)
