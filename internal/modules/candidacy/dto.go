package candidacy

type ApplyRequest struct {
	Message       string   `json:"mensagem" validate:"required,min=10,max=3000"`
	ProposedValue *float64 `json:"valor_proposto" validate:"omitempty,gt=0"`
}

type DecisionRequest struct {
	Status string `json:"status" validate:"required,oneof=aceita recusada"`
}
