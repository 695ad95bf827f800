package schema

import "time"

// AccountSuspension represents the account_suspensions table - moderation
// records barring an identity from mutating operations. A suspension is
// active while lifted_at is null; lifting closes the row instead of deleting
// it, keeping the moderation history.
type AccountSuspension struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Account is the suspended identity
	Account string `gorm:"column:account;not null;type:text;index:idx_account_suspensions_account"`
	// Reason is the operator-supplied explanation for the suspension
	Reason string `gorm:"column:reason;type:text"`
	// SuspendedAt is when the suspension took effect
	SuspendedAt time.Time `gorm:"column:suspended_at;not null;type:timestamptz"`
	// LiftedAt is when the suspension was lifted (null while active)
	LiftedAt *time.Time `gorm:"column:lifted_at;type:timestamptz"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the AccountSuspension model
func (AccountSuspension) TableName() string {
	return "account_suspensions"
}
