package models

import "time"

// SplitType is the closed set of ways one split entry can be declared.
type SplitType string

const (
	// SplitEqual divides the unaccounted remainder evenly among all
	// equal-type entries; Share is ignored.
	SplitEqual SplitType = "equal"

	// SplitExact declares Share as an absolute monetary amount.
	SplitExact SplitType = "exact"

	// SplitPercentage declares Share as a percentage (0-100) of the
	// expense amount.
	SplitPercentage SplitType = "percentage"
)

// SplitItem is one user's declared portion of an expense.
// The meaning of Share depends on Type.
type SplitItem struct {
	// User is the email of the member responsible for this share.
	User string `json:"user" validate:"required,email"`

	// Type selects how Share is interpreted.
	Type SplitType `json:"type" validate:"required,oneof=equal exact percentage"`

	// Share is an absolute amount (exact), a percentage (percentage),
	// or ignored (equal). Never negative.
	Share float64 `json:"share" validate:"gte=0"`
}

// Expense represents a purchase paid by one group member.
// Collection: "expense".
type Expense struct {
	// GroupID references the group this expense belongs to.
	GroupID string `json:"group_id" validate:"required"`

	// Description is what was purchased.
	Description string `json:"description" validate:"required"`

	// Amount is the total amount of the expense. Strictly positive.
	Amount float64 `json:"amount" validate:"required,gt=0"`

	// Currency is the expense's currency code. Defaults to the group's
	// default currency when the request leaves it blank.
	Currency string `json:"currency" validate:"required,len=3,alpha"`

	// PaidBy is the email of the member who paid.
	PaidBy string `json:"paid_by" validate:"required,email"`

	// Date is when the expense happened. Optional; "now" semantics are
	// left to the client.
	Date *time.Time `json:"date,omitempty"`

	// Splits declares how the amount divides among members. An empty
	// list means "unsplit": the expense is attributed wholly to PaidBy.
	Splits []SplitItem `json:"splits" validate:"omitempty,dive"`

	// Notes is optional free text.
	Notes string `json:"notes,omitempty"`
}
