package salarycomponent

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	componenterrors "github.com/webflowdev33/hr-haven-space-sub000/internal/salarycomponent/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return componenterrors.ErrComponentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return componenterrors.ErrDuplicateCode
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "idx_component_code") {
		return componenterrors.ErrDuplicateCode
	}

	return err
}
