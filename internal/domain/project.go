package domain

import "time"

type ProjectStatus string

const (
	ProjectOpen   ProjectStatus = "aberto"
	ProjectClosed ProjectStatus = "fechado"
)

type Project struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	CompanyID   int64         `json:"empresa_id" gorm:"column:company_id;not null;index"`
	Title       string        `json:"titulo" gorm:"column:titulo;size:200;not null"`
	Description string        `json:"descricao" gorm:"column:descricao;type:text;not null"`
	Category    string        `json:"categoria" gorm:"column:categoria;size:120;index"`
	Budget      float64       `json:"orcamento" gorm:"column:orcamento;not null"`
	Deadline    *time.Time    `json:"prazo,omitempty" gorm:"column:prazo"`
	City        string        `json:"cidade,omitempty" gorm:"column:cidade;size:120;index"`
	Skills      SkillList     `json:"habilidades" gorm:"column:habilidades;type:text"`
	Status      ProjectStatus `json:"status" gorm:"column:status;size:20;not null;index"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Company *User `json:"empresa,omitempty" gorm:"foreignKey:CompanyID"`
}

type CandidacyStatus string

const (
	CandidacyPending   CandidacyStatus = "pendente"
	CandidacyAccepted  CandidacyStatus = "aceita"
	CandidacyRejected  CandidacyStatus = "recusada"
	CandidacyWithdrawn CandidacyStatus = "retirada"
)

type Candidacy struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	ProjectID     int64           `json:"projeto_id" gorm:"column:project_id;not null;uniqueIndex:idx_candidacy_project_freelancer"`
	FreelancerID  int64           `json:"freelancer_id" gorm:"column:freelancer_id;not null;uniqueIndex:idx_candidacy_project_freelancer;index"`
	Message       string          `json:"mensagem" gorm:"column:mensagem;type:text;not null"`
	ProposedValue *float64        `json:"valor_proposto,omitempty" gorm:"column:valor_proposto"`
	Status        CandidacyStatus `json:"status" gorm:"column:status;size:20;not null;index"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Project    *Project `json:"projeto,omitempty" gorm:"foreignKey:ProjectID"`
	Freelancer *User    `json:"freelancer,omitempty" gorm:"foreignKey:FreelancerID"`
}
