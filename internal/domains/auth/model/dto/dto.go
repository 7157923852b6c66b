package dto

import (
	"hotelres/infras/jwt"
	"hotelres/internal/domains/auth/model"
	"strings"
)

type SignupRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone"      validate:"required,max=32"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
}

func (r *SignupRequest) ToIdentity(id string) model.Identity {
	return model.Identity{
		ID:        id,
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     NormalizeEmail(r.Email),
		Phone:     strings.TrimSpace(r.Phone),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type IdentityResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (r *IdentityResponse) FromModel(identity model.Identity) {
	r.ID = identity.ID
	r.FirstName = identity.FirstName
	r.LastName = identity.LastName
	r.FullName = identity.FullName()
	r.Email = identity.Email
	r.Phone = identity.Phone
}

type SessionResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	TokenType    string           `json:"token_type"`
	ExpiresIn    int64            `json:"expires_in"`
	User         IdentityResponse `json:"user"`
}

func (s *SessionResponse) FromTokenPair(tokenPair *jwt.TokenPair, identity model.Identity) {
	s.AccessToken = tokenPair.AccessToken
	s.RefreshToken = tokenPair.RefreshToken
	s.TokenType = tokenPair.TokenType
	s.ExpiresIn = tokenPair.ExpiresIn
	s.User.FromModel(identity)
}

// NormalizeEmail is the lookup form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
