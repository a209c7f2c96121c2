package models

// Profile is the account record of the authenticated user.
type Profile struct {
	ID          string   `json:"id,omitempty"`
	Email       string   `json:"email,omitempty"`
	FullName    string   `json:"full_name,omitempty"`
	IsActive    bool     `json:"is_active,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	LastLoginAt string   `json:"last_login_at,omitempty"`
}

// DisplayName returns the profile's name, falling back to the email address.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}
