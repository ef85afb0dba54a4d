package leave

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	leaveerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/leave/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_leave_type_name" {
			return leaveerrors.ErrDuplicateLeaveType
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "idx_leave_type_name") {
		return leaveerrors.ErrDuplicateLeaveType
	}

	return err
}

func mapLeaveTypeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveTypeNotFound
	}
	return mapRepositoryError(err)
}

func mapPolicyError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrPolicyNotFound
	}
	return mapRepositoryError(err)
}
