package auth

import "freelahub/internal/domain"

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type CheckEmailResult struct {
	Exists   bool         `json:"exists"`
	Role     *domain.Role `json:"tipo"`
	NextStep Step         `json:"next_step"`
}

type QuickRegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"nome" validate:"required,min=2,max=255"`
	Phone    string `json:"telefone" validate:"required,min=8,max=32"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"tipo" validate:"required,tipo"`
}

// RegisterRequest is the full signup form: the quick fields plus the
// role-specific ones, all optional and validated when present.
type RegisterRequest struct {
	QuickRegisterRequest

	CNPJ      string `json:"cnpj" validate:"omitempty,cnpj"`
	LegalName string `json:"razao_social" validate:"max=255"`
	Sector    string `json:"setor" validate:"max=120"`

	CPF        string   `json:"cpf" validate:"omitempty,cpf"`
	Profession string   `json:"profissao" validate:"max=120"`
	Experience string   `json:"experiencia" validate:"max=120"`
	HourlyRate float64  `json:"valor_hora" validate:"omitempty,gt=0"`
	Skills     []string `json:"habilidades" validate:"omitempty,max=30,dive,min=1,max=60"`
}

// otherRoleFields reports role-specific fields filled in for the role the
// account is not signing up as.
func (r RegisterRequest) otherRoleFields(role domain.Role) map[string]string {
	company := map[string]bool{
		"cnpj":         r.CNPJ != "",
		"razao_social": r.LegalName != "",
		"setor":        r.Sector != "",
	}
	freelancer := map[string]bool{
		"cpf":         r.CPF != "",
		"profissao":   r.Profession != "",
		"experiencia": r.Experience != "",
		"valor_hora":  r.HourlyRate != 0,
		"habilidades": len(r.Skills) > 0,
	}

	var foreign map[string]bool
	switch role {
	case domain.RoleCompany:
		foreign = freelancer
	case domain.RoleFreelancer:
		foreign = company
	}

	out := map[string]string{}
	for name, set := range foreign {
		if set {
			out[name] = "not allowed for tipo " + string(role)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required,len=64,hexadecimal"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// AuthResult is returned by every operation that opens a session.
type AuthResult struct {
	User        *domain.User `json:"user"`
	Token       string       `json:"token"`
	Destination string       `json:"destino,omitempty"`
}
