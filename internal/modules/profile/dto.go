package profile

import "freelahub/internal/domain"

type CompleteCompanyRequest struct {
	CNPJ         string `json:"cnpj" validate:"required,cnpj"`
	LegalName    string `json:"razao_social" validate:"required,min=2,max=255"`
	Sector       string `json:"setor" validate:"required,max=120"`
	Description  string `json:"descricao" validate:"max=2000"`
	City         string `json:"cidade" validate:"required,max=120"`
	Neighborhood string `json:"bairro" validate:"required,max=120"`
}

type CompleteFreelancerRequest struct {
	CPF          string   `json:"cpf" validate:"required,cpf"`
	Profession   string   `json:"profissao" validate:"required,max=120"`
	Experience   string   `json:"experiencia" validate:"required,max=120"`
	HourlyRate   float64  `json:"valor_hora" validate:"required,gt=0"`
	Skills       []string `json:"habilidades" validate:"required,min=1,max=30,dive,min=1,max=60"`
	Bio          string   `json:"bio" validate:"max=2000"`
	City         string   `json:"cidade" validate:"required,max=120"`
	Neighborhood string   `json:"bairro" validate:"required,max=120"`
}

type CompletionStatus struct {
	IsComplete bool `json:"isComplete"`
}

// MyProfile is the signed-in user together with its role profile.
type MyProfile struct {
	User       *domain.User       `json:"user"`
	Profile    domain.RoleProfile `json:"perfil"`
	IsComplete bool               `json:"isComplete"`
}
