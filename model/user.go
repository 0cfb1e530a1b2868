package model

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Staff moderates sessions and bookings, admin additionally sees aggregate stats.
func (r Role) IsStaff() bool { return r == RoleStaff || r == RoleAdmin }

type Membership struct {
	Plan          *string    `json:"plan,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	LoyaltyPoints int64      `json:"loyalty_points"`
}

type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        *string    `json:"email,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Membership   Membership `json:"membership"`
	CreatedAt    time.Time  `json:"created_at"`
}

// RegisterReq represents the registration payload. Email or phone must be
// present; the service enforces that since validator tags cannot express it.
// swagger:model RegisterReq
type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,min=6"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginReq represents the login payload (email or phone plus password).
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
}

type SubscribeReq struct {
	Plan string `json:"plan" validate:"required"`
}
