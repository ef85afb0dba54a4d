package finance

import (
	"errors"

	"gorm.io/gorm"

	financeerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/finance/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return financeerrors.ErrEntryNotFound
	}
	return err
}
