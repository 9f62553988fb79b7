package models

// DefaultCurrency is applied when a user or group does not pick one.
const DefaultCurrency = "USD"

// DefaultLocale is applied when a user does not pick one.
const DefaultLocale = "en"

// Appuser represents a registered user of the app.
// Collection: "appuser".
type Appuser struct {
	// Name is the user's full display name.
	Name string `json:"name" validate:"required"`

	// Email is the user's unique identity. All references to a user
	// (group members, expense payer, split owner) use this value.
	Email string `json:"email" validate:"required,email"`

	// AvatarURL is an optional profile image URL.
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`

	// DefaultCurrency is the user's preferred currency code.
	DefaultCurrency string `json:"default_currency" validate:"required,len=3,alpha"`

	// Locale is the user's preferred locale for formatting.
	Locale string `json:"locale" validate:"required"`
}

// ApplyDefaults fills the optional preference fields.
func (u *Appuser) ApplyDefaults() {
	if u.DefaultCurrency == "" {
		u.DefaultCurrency = DefaultCurrency
	}
	if u.Locale == "" {
		u.Locale = DefaultLocale
	}
}
