package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrProjectNotFound signals a missing research project.
	ErrProjectNotFound = errors.New("project not found")
	// ErrDocumentNotFound signals a missing project document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrMemberNotFound signals a missing team member.
	ErrMemberNotFound = errors.New("team member not found")
	// ErrInvalidInput signals a malformed request value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidPageSize signals a non-positive page size or negative page index.
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrAnswerProviderError signals a language model provider failure.
	ErrAnswerProviderError = errors.New("answer provider error")
	// ErrAnswerTimeout signals that the language model did not answer in time.
	ErrAnswerTimeout = errors.New("answer provider timeout")
	// ErrAnswerEmpty signals an empty or unusable model response.
	ErrAnswerEmpty = errors.New("answer provider returned no content")
	// ErrAnswerQuotaExceeded signals that the token budget rejected the request.
	ErrAnswerQuotaExceeded = errors.New("answer token budget exceeded")
)
