package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the account kind chosen at signup. Switches over Role must list
// every constant and treat anything else as ErrUnknownRole.
type Role string

const (
	RoleCompany    Role = "empresa"
	RoleFreelancer Role = "freelancer"
)

var ErrUnknownRole = errors.New("unknown role")

// Roles lists every supported role.
func Roles() []Role { return []Role{RoleCompany, RoleFreelancer} }

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleCompany, RoleFreelancer:
		return r, nil
	}
	return "", ErrUnknownRole
}

func (r Role) String() string { return string(r) }

type User struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Email         string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Name          string    `json:"nome" gorm:"column:nome;size:255;not null"`
	Phone         string    `json:"telefone,omitempty" gorm:"column:telefone;size:32"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	Role          Role      `json:"tipo" gorm:"column:tipo;size:20;not null;index"`
	City          string    `json:"cidade,omitempty" gorm:"column:cidade;size:120"`
	Neighborhood  string    `json:"bairro,omitempty" gorm:"column:bairro;size:120"`
	IsActive      bool      `json:"is_active" gorm:"not null;default:true"`
	EmailVerified bool      `json:"email_verified" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NormalizeEmail is the canonical form stored in users.email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
