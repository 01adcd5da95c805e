package services

import (
	"errors"

	"github.com/famledger/famledger/internal/apperrors"
)

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, apperrors.ErrDuplicate)
}
