package domain

import "errors"

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrLeadNotFound        = errors.New("lead not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrTaskNotFound        = errors.New("project task not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidLeadStatus   = errors.New("invalid lead status")
	ErrNegativeAmount      = errors.New("transaction amount must be non-negative")
)
