package models

import "github.com/pkg/errors"

type ErrorCode string

const (
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"
	CodeDuplicateProposal  ErrorCode = "DUPLICATE_PROPOSAL"
	CodeOfferAlreadyFilled ErrorCode = "OFFER_ALREADY_FILLED"
	CodeInvalidRating      ErrorCode = "INVALID_RATING"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeValidation         ErrorCode = "VALIDATION"
)

// WorkflowError бизнес-ошибка, возвращается вызывающему как есть, без повторов.
// Сравнение через errors.Is идет по коду, сообщение может отличаться.
type WorkflowError struct {
	Code    ErrorCode
	Message string
}

func (e *WorkflowError) Error() string {
	return e.Message
}

func (e *WorkflowError) Is(target error) bool {
	t, ok := target.(*WorkflowError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrNotFound           = &WorkflowError{Code: CodeNotFound, Message: "запись не найдена"}
	ErrInvalidTransition  = &WorkflowError{Code: CodeInvalidTransition, Message: "операция недоступна в текущем статусе"}
	ErrDuplicateProposal  = &WorkflowError{Code: CodeDuplicateProposal, Message: "кандидат уже предложен на эту вакансию"}
	ErrOfferAlreadyFilled = &WorkflowError{Code: CodeOfferAlreadyFilled, Message: "вакансия уже закрыта другим кандидатом"}
	ErrInvalidRating      = &WorkflowError{Code: CodeInvalidRating, Message: "оценка должна быть от 1 до 5"}
	ErrUnauthorized       = &WorkflowError{Code: CodeUnauthorized, Message: "операция недоступна"}
	ErrValidation         = &WorkflowError{Code: CodeValidation, Message: "некорректные данные"}
)

func NewNotFound(message string) error {
	return &WorkflowError{Code: CodeNotFound, Message: message}
}

func NewInvalidTransition(message string) error {
	return &WorkflowError{Code: CodeInvalidTransition, Message: message}
}

func NewInvalidRating(message string) error {
	return &WorkflowError{Code: CodeInvalidRating, Message: message}
}

func NewUnauthorized(message string) error {
	return &WorkflowError{Code: CodeUnauthorized, Message: message}
}

func NewValidation(message string) error {
	return &WorkflowError{Code: CodeValidation, Message: message}
}

// WorkflowErrorFrom достает бизнес-ошибку из цепочки, nil если это инфраструктурная ошибка
func WorkflowErrorFrom(err error) *WorkflowError {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we
	}
	return nil
}
