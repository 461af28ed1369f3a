package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"freelahub/internal/pkg/brdoc"
)

// DefaultSector is assigned to companies that signed up without choosing one.
const DefaultSector = "Outros"

// RoleProfile is the one-to-one extension row a user gets for its role.
type RoleProfile interface {
	ProfileRole() Role
	// Identifier is the stored CPF or CNPJ digits, possibly empty.
	Identifier() string
	// HasValidIdentifier reports whether Identifier is present and passes its checksum.
	HasValidIdentifier() bool
	AttachTo(userID int64)
}

type CompanyProfile struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"not null;uniqueIndex"`
	CNPJ        string    `json:"cnpj" gorm:"column:cnpj;size:14"`
	LegalName   string    `json:"razao_social" gorm:"column:razao_social;size:255"`
	Sector      string    `json:"setor" gorm:"column:setor;size:120;not null"`
	Description string    `json:"descricao,omitempty" gorm:"column:descricao;type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (*CompanyProfile) ProfileRole() Role          { return RoleCompany }
func (p *CompanyProfile) Identifier() string       { return p.CNPJ }
func (p *CompanyProfile) HasValidIdentifier() bool { return p.CNPJ != "" && brdoc.ValidCNPJ(p.CNPJ) }
func (p *CompanyProfile) AttachTo(userID int64)    { p.UserID = userID }

type FreelancerProfile struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"user_id" gorm:"not null;uniqueIndex"`
	CPF        string    `json:"cpf" gorm:"column:cpf;size:11"`
	Profession string    `json:"profissao" gorm:"column:profissao;size:120"`
	Experience string    `json:"experiencia" gorm:"column:experiencia;size:120"`
	HourlyRate float64   `json:"valor_hora" gorm:"column:valor_hora;not null"`
	Skills     SkillList `json:"habilidades" gorm:"column:habilidades;type:text"`
	Bio        string    `json:"bio,omitempty" gorm:"column:bio;type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (*FreelancerProfile) ProfileRole() Role          { return RoleFreelancer }
func (p *FreelancerProfile) Identifier() string       { return p.CPF }
func (p *FreelancerProfile) HasValidIdentifier() bool { return p.CPF != "" && brdoc.ValidCPF(p.CPF) }
func (p *FreelancerProfile) AttachTo(userID int64)    { p.UserID = userID }

// NewRoleProfile builds the placeholder profile created together with a
// user at signup: no identifier, default sector and hourly rate.
func NewRoleProfile(role Role, defaultHourlyRate float64) (RoleProfile, error) {
	switch role {
	case RoleCompany:
		return &CompanyProfile{Sector: DefaultSector}, nil
	case RoleFreelancer:
		return &FreelancerProfile{HourlyRate: defaultHourlyRate, Skills: SkillList{}}, nil
	}
	return nil, ErrUnknownRole
}

// SkillList is a set of skill tags stored as a JSON array column.
type SkillList []string

// NewSkillList trims, drops empties and removes case-insensitive duplicates,
// keeping first-seen order.
func NewSkillList(tags []string) SkillList {
	out := make(SkillList, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (s SkillList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := encodeJSON([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// EncodeSkill returns tag exactly as it appears inside a stored SkillList,
// quotes included.
func EncodeSkill(tag string) string {
	b, _ := encodeJSON(tag)
	return string(b)
}

// encodeJSON marshals without HTML escaping so &, < and > are stored verbatim.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (s *SkillList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = SkillList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("skill list: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*s = SkillList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("skill list: %w", err)
	}
	*s = out
	return nil
}

// Has reports whether the list contains tag, ignoring case.
func (s SkillList) Has(tag string) bool {
	for _, t := range s {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
