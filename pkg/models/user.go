package models

import "time"

// User is an authenticated account. One business per user.
type User struct {
	ID              int        `json:"id"`
	Email           string     `json:"email"`
	HashedPassword  string     `json:"-"`
	CompanyName     string     `json:"company_name"`
	Industry        string     `json:"industry"`
	YearsInBusiness int        `json:"years_in_business"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// Profile returns the business profile view of the account, which is what
// the engines consume.
func (u *User) Profile() BusinessProfile {
	return BusinessProfile{
		CompanyName:     u.CompanyName,
		Industry:        u.Industry,
		YearsInBusiness: u.YearsInBusiness,
	}
}
