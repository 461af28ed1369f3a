package auth

import (
	"fmt"

	"freelahub/internal/domain"
)

// Step is a state of the two-step signup/login form. The client starts at
// StepEmailEntry, check-email moves it to StepLogin or StepRegister, and
// "back" returns it to StepEmailEntry.
type Step string

const (
	StepEmailEntry Step = "email-entry"
	StepLogin      Step = "login"
	StepRegister   Step = "register"
)

// NextStep is the transition taken after the email lookup.
func NextStep(exists bool) Step {
	if exists {
		return StepLogin
	}
	return StepRegister
}

// Destination is where the client lands after a successful login.
func Destination(role domain.Role, complete bool) (string, error) {
	switch role {
	case domain.RoleCompany, domain.RoleFreelancer:
	default:
		return "", domain.ErrUnknownRole
	}
	if !complete {
		return fmt.Sprintf("/completar-perfil/%s", role), nil
	}
	return fmt.Sprintf("/dashboard/%s", role), nil
}
