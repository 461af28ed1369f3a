package project

import "errors"

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrNotProjectOwner    = errors.New("project belongs to another company")
	ErrInvalidDeadline    = errors.New("deadline must not be in the past")
	ErrInvalidBudgetRange = errors.New("orcamento_min is greater than orcamento_max")
)
