package usecase

import "errors"

// ErrStoreUnavailable signals that no lead store was configured.
// Writes fail hard with it; reads degrade to empty results instead.
var ErrStoreUnavailable = errors.New("lead store is not configured")

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
