package models

import "errors"

// Errors shared by every store implementation.
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrEmailTaken          = errors.New("email already in use")
	ErrFormNotFound        = errors.New("form not found")
	ErrResponseNotFound    = errors.New("response not found")
	ErrDuplicateSubmission = errors.New("duplicate daily submission")
	ErrDuplicateReFeedback = errors.New("re-feedback already submitted")
)
