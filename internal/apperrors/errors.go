package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrBrokenReference indicates that a record points at related data that no
// longer exists (e.g. a project referencing a deleted contact). Handlers
// surface the wrapped message verbatim so the caller sees which reference broke.
var ErrBrokenReference = errors.New("broken reference")
