package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values
const (
	RoleUnverified = "unverified"
	RoleVerified   = "verified"
	RoleAdmin      = "admin"
)

// User represents a registered user in the system
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email           string             `bson:"email" json:"email"`
	PasswordHash    string             `bson:"passwordHash" json:"-"`
	PhoneNumber     string             `bson:"phoneNumber" json:"phoneNumber"`
	DisplayName     string             `bson:"displayName" json:"displayName"`
	ProfileImageURL string             `bson:"profileImageUrl" json:"profileImageUrl"`
	Role            string             `bson:"role" json:"role"`
	IsEmailVerified bool               `bson:"isEmailVerified" json:"isEmailVerified"`
	IsPhoneVerified bool               `bson:"isPhoneVerified" json:"isPhoneVerified"`
	IsBanned        bool               `bson:"isBanned" json:"isBanned"`
	LastLogin       *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsVerified reports whether the user may vote and comment. Both contact
// channels must be confirmed, matching the community-signal trust gate.
func (u *User) IsVerified() bool {
	return u.IsEmailVerified && u.IsPhoneVerified
}

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	PhoneNumber string `json:"phoneNumber" binding:"required,min=7,max=20"`
	DisplayName string `json:"displayName" binding:"required,min=2,max=50"`
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after successful registration or login
type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
}
