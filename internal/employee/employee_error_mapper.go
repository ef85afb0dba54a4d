package employee

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/employee/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "idx_employee_email":
				return employeeerrors.ErrDuplicateEmail
			case "idx_employee_card":
				return employeeerrors.ErrDuplicateCardNumber
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "idx_employee_email") {
			return employeeerrors.ErrDuplicateEmail
		}
		if strings.Contains(errMsg, "idx_employee_card") {
			return employeeerrors.ErrDuplicateCardNumber
		}
	}

	return err
}
