package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/civicfix/api/internal/pkg/access"
)

const defaultProfileImage = "https://res.cloudinary.com/civicfix/image/upload/v1/defaults/profile_pic.jpg"

// PendingVerification marks a department account whose identity document has
// not been reviewed yet. Verification itself is an administrative action
// performed outside this API.
const PendingVerification = "pending_verification"

// User represents a registered account: a citizen, a municipal department or
// an admin.
type User struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name            string              `bson:"name" json:"name"`
	Email           string              `bson:"email" json:"email"`
	Password        string              `bson:"password" json:"-"`
	Role            access.Role         `bson:"role" json:"role"`
	PhoneNumber     string              `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	City            *primitive.ObjectID `bson:"city,omitempty" json:"city,omitempty"`
	Department      string              `bson:"department,omitempty" json:"department,omitempty"`
	ProfileImage    string              `bson:"profileImage" json:"profileImage"`
	IDProof         string              `bson:"idProof,omitempty" json:"idProof,omitempty"`
	IDProofVerified bool                `bson:"idProofVerified" json:"idProofVerified"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// HashPassword replaces the plaintext password with its bcrypt hash.
func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// ComparePassword checks a login attempt against the stored hash.
func (u *User) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}

// Actor maps the account onto the access-control actor.
func (u *User) Actor() access.Actor {
	return access.Actor{ID: u.ID, Role: u.Role}
}

// Request DTOs

// RegisterRequest is bound from JSON or from multipart form fields when an
// identity document is attached.
type RegisterRequest struct {
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	Role        string `json:"role" form:"role"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
	City        string `json:"city" form:"city"`
	Department  string `json:"department" form:"department"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	City        string `json:"city"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
