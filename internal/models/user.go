package models

import "time"

// Subscription tiers.
const (
	TierFree       = "free"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// User is an account row. The profile fields live alongside the credentials
// because a profile is created implicitly at signup and is owned 1:1 by the user.
type User struct {
	ID                 string    `json:"id" db:"id"`
	Email              string    `json:"email" db:"email"`
	PasswordHash       string    `json:"-" db:"password_hash"`
	FullName           string    `json:"full_name" db:"full_name"`
	Bio                string    `json:"bio" db:"bio"`
	AvatarURL          *string   `json:"avatar_url" db:"avatar_url"`
	SubscriptionTier   string    `json:"subscription_tier" db:"subscription_tier"`
	RefreshToken       string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiry time.Time `json:"-" db:"refresh_token_expiry"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// Profile is the public view of a user returned by the profile endpoints.
type Profile struct {
	ID               string  `json:"id"`
	Email            string  `json:"email"`
	FullName         string  `json:"full_name"`
	Bio              string  `json:"bio"`
	AvatarURL        *string `json:"avatar_url"`
	SubscriptionTier string  `json:"subscription_tier"`
}

// ProfileView projects the account into its public shape.
func (u *User) ProfileView() Profile {
	return Profile{
		ID:               u.ID,
		Email:            u.Email,
		FullName:         u.FullName,
		Bio:              u.Bio,
		AvatarURL:        u.AvatarURL,
		SubscriptionTier: u.SubscriptionTier,
	}
}
