package auth

import (
	"errors"
	"strings"

	"github.com/civicfix/api/internal/pkg/access"
	"github.com/civicfix/api/internal/pkg/validator"
)

// ValidateRegister normalizes and checks a registration request. The role
// defaults to citizen when omitted.
func ValidateRegister(req *RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.City = strings.TrimSpace(req.City)
	req.Department = strings.TrimSpace(req.Department)

	if req.Name == "" {
		return errors.New("name is required")
	}
	if !validator.IsValidEmail(req.Email) {
		return errors.New("a valid email is required")
	}
	if !validator.IsValidPassword(req.Password) {
		return errors.New("password must be at least 8 characters")
	}
	if req.PhoneNumber != "" && !validator.IsValidPhone(req.PhoneNumber) {
		return errors.New("phone number must be a 10 digit number")
	}

	if req.Role == "" {
		req.Role = string(access.RoleCitizen)
	}
	if !access.ValidRole(access.Role(req.Role)) {
		return errors.New("role must be one of citizen, department, admin")
	}
	if req.Role == string(access.RoleDepartment) && req.Department == "" {
		return errors.New("department name is required for department accounts")
	}

	return nil
}

// ValidateProfileUpdate checks the self-service profile edit request.
func ValidateProfileUpdate(req *UpdateProfileRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Email != "" && !validator.IsValidEmail(req.Email) {
		return errors.New("a valid email is required")
	}
	if req.Password != "" && !validator.IsValidPassword(req.Password) {
		return errors.New("password must be at least 8 characters")
	}
	if req.PhoneNumber != "" && !validator.IsValidPhone(req.PhoneNumber) {
		return errors.New("phone number must be a 10 digit number")
	}

	return nil
}
