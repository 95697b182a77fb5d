package shared

// PartnershipStatus represents the standing of a partner with the company
type PartnershipStatus string

const (
	PartnershipActive   PartnershipStatus = "active"
	PartnershipInactive PartnershipStatus = "inactive"
	PartnershipBanned   PartnershipStatus = "banned"
)

// AchievementType classifies what a partner accomplished
type AchievementType string

const (
	// AchievementClose is awarded when a partner closes an operation
	AchievementClose AchievementType = "close"
	// AchievementCapture is awarded when a partner captures a new property
	AchievementCapture AchievementType = "capture"
)

// OperationType classifies a real-estate operation
type OperationType string

const (
	OperationSale OperationType = "sale"
	OperationRent OperationType = "rent"
)

// Valid reports whether the achievement type is a known value
func (a AchievementType) Valid() bool {
	return a == AchievementClose || a == AchievementCapture
}

// Valid reports whether the operation type is a known value
func (o OperationType) Valid() bool {
	return o == OperationSale || o == OperationRent
}
