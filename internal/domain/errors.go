package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// ContractViolation is the panic value raised when a repository caller breaks
// a precondition the repository does not recover from.
type ContractViolation struct {
	Op  string
	Err error
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ContractViolation) Unwrap() error {
	return e.Err
}
