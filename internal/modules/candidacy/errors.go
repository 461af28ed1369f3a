package candidacy

import "errors"

var (
	ErrCandidacyNotFound       = errors.New("candidacy not found")
	ErrProjectClosed           = errors.New("project is not accepting candidacies")
	ErrAlreadyApplied          = errors.New("already applied to this project")
	ErrNotCandidacyOwner       = errors.New("candidacy belongs to another freelancer")
	ErrInvalidStatusTransition = errors.New("candidacy is no longer pending")
)
