package models

// Group represents a set of people who share expenses.
// Collection: "group".
//
// Invariant: Members always contains CreatedBy and never contains a
// duplicate email. The service layer enforces this at creation time via
// split.NormalizeMembers before the group is validated or stored.
type Group struct {
	// Name is the group's display name (e.g. "Roommates", "Ski Trip").
	Name string `json:"name" validate:"required"`

	// CreatedBy is the creator's email.
	CreatedBy string `json:"created_by" validate:"required,email"`

	// Members are the member emails, in insertion order, creator included.
	Members []string `json:"members" validate:"required,min=1,dive,email"`

	// DefaultCurrency is the currency expenses in this group default to.
	DefaultCurrency string `json:"default_currency" validate:"required,len=3,alpha"`

	// ImageURL is an optional group cover image.
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// ApplyDefaults fills the group currency if unset.
func (g *Group) ApplyDefaults() {
	if g.DefaultCurrency == "" {
		g.DefaultCurrency = DefaultCurrency
	}
}
