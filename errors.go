package labdex

import "github.com/kailas-cloud/labdex/internal/domain"

// Errors returned (wrapped) by Client methods. Match with errors.Is.
var (
	ErrProjectNotFound  = domain.ErrProjectNotFound
	ErrDocumentNotFound = domain.ErrDocumentNotFound
	ErrMemberNotFound   = domain.ErrMemberNotFound
	ErrInvalidInput     = domain.ErrInvalidInput
	ErrInvalidPageSize  = domain.ErrInvalidPageSize
)
