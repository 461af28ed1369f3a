package project

import "freelahub/internal/domain"

const dateLayout = "2006-01-02"

type CreateProjectRequest struct {
	Title       string   `json:"titulo" validate:"required,min=3,max=200"`
	Description string   `json:"descricao" validate:"required,min=10,max=5000"`
	Category    string   `json:"categoria" validate:"required,max=120"`
	Budget      float64  `json:"orcamento" validate:"required,gt=0"`
	Deadline    string   `json:"prazo" validate:"omitempty,datetime=2006-01-02"`
	City        string   `json:"cidade" validate:"max=120"`
	Skills      []string `json:"habilidades" validate:"max=30,dive,min=1,max=60"`
}

// ListProjectsQuery is bound from the query string of GET /projects.
type ListProjectsQuery struct {
	Category  string  `form:"categoria" json:"categoria" validate:"max=120"`
	City      string  `form:"cidade" json:"cidade" validate:"max=120"`
	Status    string  `form:"status" json:"status" validate:"omitempty,oneof=aberto fechado todos"`
	Query     string  `form:"q" json:"q" validate:"max=200"`
	Skill     string  `form:"habilidade" json:"habilidade" validate:"max=60"`
	MinBudget float64 `form:"orcamento_min" json:"orcamento_min" validate:"gte=0"`
	MaxBudget float64 `form:"orcamento_max" json:"orcamento_max" validate:"gte=0"`
	Page      int     `form:"page" json:"page" validate:"gte=0"`
	Limit     int     `form:"limit" json:"limit" validate:"gte=0"`
}

type ProjectPage struct {
	Items []domain.Project `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
