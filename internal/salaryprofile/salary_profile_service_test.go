package salaryprofile_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/salaryprofile"
	profileerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/salaryprofile/errors"
)

type fakeRepo struct {
	createFn       func(ctx context.Context, profile *salaryprofile.SalaryProfile) error
	findByIDFn     func(ctx context.Context, companyID, id string) (*salaryprofile.SalaryProfile, error)
	findActiveFn   func(ctx context.Context, companyID, employeeID string) (*salaryprofile.SalaryProfile, error)
	findAllFn      func(ctx context.Context, companyID, employeeID string) ([]salaryprofile.SalaryProfile, error)
	listActiveFn   func(ctx context.Context, companyID string) ([]salaryprofile.SalaryProfile, error)
	deactivateFn   func(ctx context.Context, companyID, employeeID string) error
	listCodesFn    func(ctx context.Context, companyID string) ([]string, error)
	deactivateHits int
}

func (f *fakeRepo) WithTx(tx *sql.Tx) salaryprofile.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, profile *salaryprofile.SalaryProfile) error {
	return f.createFn(ctx, profile)
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*salaryprofile.SalaryProfile, error) {
	return f.findByIDFn(ctx, companyID, id)
}

func (f *fakeRepo) FindActiveByEmployee(ctx context.Context, companyID, employeeID string) (*salaryprofile.SalaryProfile, error) {
	return f.findActiveFn(ctx, companyID, employeeID)
}

func (f *fakeRepo) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]salaryprofile.SalaryProfile, error) {
	return f.findAllFn(ctx, companyID, employeeID)
}

func (f *fakeRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]salaryprofile.SalaryProfile, error) {
	return f.listActiveFn(ctx, companyID)
}

func (f *fakeRepo) DeactivateByEmployee(ctx context.Context, companyID, employeeID string) error {
	f.deactivateHits++
	if f.deactivateFn != nil {
		return f.deactivateFn(ctx, companyID, employeeID)
	}
	return nil
}

func (f *fakeRepo) ListActiveComponentCodes(ctx context.Context, companyID string) ([]string, error) {
	return f.listCodesFn(ctx, companyID)
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestSalaryProfileService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success - supersedes previous active profile", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{
			listCodesFn: func(ctx context.Context, gotCompany string) ([]string, error) {
				assert.Equal(t, companyID, gotCompany)
				return []string{"BASIC", "HRA"}, nil
			},
			createFn: func(ctx context.Context, profile *salaryprofile.SalaryProfile) error {
				assert.True(t, profile.Active)
				assert.Equal(t, employeeID, profile.EmployeeID.String())
				assert.Len(t, profile.Amounts, 2)
				return nil
			},
		}
		svc := salaryprofile.NewService(db, repo)

		expectTx(t, sqlMock, true)

		resp, err := svc.Create(ctx, companyID, salaryprofile.CreateSalaryProfileRequest{
			EmployeeID:    employeeID,
			EffectiveFrom: "2026-01-01",
			Amounts:       map[string]int64{"BASIC": 2000000, "HRA": 800000},
			BankName:      "HDFC",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, repo.deactivateHits)
		assert.True(t, resp.Active)
		assert.Equal(t, int64(2000000), resp.Amounts["BASIC"])
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown component code rejected before tx", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{
			listCodesFn: func(ctx context.Context, companyID string) ([]string, error) {
				return []string{"BASIC"}, nil
			},
		}
		svc := salaryprofile.NewService(db, repo)

		_, err := svc.Create(ctx, companyID, salaryprofile.CreateSalaryProfileRequest{
			EmployeeID:    employeeID,
			EffectiveFrom: "2026-01-01",
			Amounts:       map[string]int64{"BOGUS": 100},
		})

		assert.ErrorIs(t, err, profileerrors.ErrUnknownComponentCode)
		assert.Equal(t, 0, repo.deactivateHits)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{
			listCodesFn: func(ctx context.Context, companyID string) ([]string, error) {
				return []string{"BASIC"}, nil
			},
		}
		svc := salaryprofile.NewService(db, repo)

		_, err := svc.Create(ctx, companyID, salaryprofile.CreateSalaryProfileRequest{
			EmployeeID:    employeeID,
			EffectiveFrom: "2026-01-01",
			Amounts:       map[string]int64{"BASIC": -1},
		})

		assert.ErrorIs(t, err, profileerrors.ErrNegativeAmount)
	})

	t.Run("invalid effective_from", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := salaryprofile.NewService(db, &fakeRepo{})

		_, err := svc.Create(ctx, companyID, salaryprofile.CreateSalaryProfileRequest{
			EmployeeID:    employeeID,
			EffectiveFrom: "01-01-2026",
			Amounts:       map[string]int64{},
		})

		assert.ErrorIs(t, err, profileerrors.ErrInvalidEffectiveFrom)
	})

	t.Run("repo error -> rollback", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{
			listCodesFn: func(ctx context.Context, companyID string) ([]string, error) {
				return []string{"BASIC"}, nil
			},
			createFn: func(ctx context.Context, profile *salaryprofile.SalaryProfile) error {
				return errors.New("db error")
			},
		}
		svc := salaryprofile.NewService(db, repo)

		expectTx(t, sqlMock, false)

		_, err := svc.Create(ctx, companyID, salaryprofile.CreateSalaryProfileRequest{
			EmployeeID:    employeeID,
			EffectiveFrom: "2026-01-01",
			Amounts:       map[string]int64{"BASIC": 100},
		})

		assert.Error(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestSalaryProfileService_SeedDefault(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success - zero amount active profile", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{
			createFn: func(ctx context.Context, profile *salaryprofile.SalaryProfile) error {
				assert.True(t, profile.Active)
				assert.Empty(t, profile.Amounts)
				return nil
			},
		}
		svc := salaryprofile.NewService(db, repo)

		expectTx(t, sqlMock, true)

		resp, err := svc.SeedDefault(ctx, companyID, employeeID)

		assert.NoError(t, err)
		assert.True(t, resp.Active)
		assert.Equal(t, 0, repo.deactivateHits, "seeding must never supersede an existing profile")
	})

	t.Run("duplicate active profile -> conflict error", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{
			createFn: func(ctx context.Context, profile *salaryprofile.SalaryProfile) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_salary_profile_active"}
			},
		}
		svc := salaryprofile.NewService(db, repo)

		expectTx(t, sqlMock, false)

		_, err := svc.SeedDefault(ctx, companyID, employeeID)

		assert.ErrorIs(t, err, profileerrors.ErrActiveProfileExists)
	})
}

func TestSalaryProfileService_GetActiveByEmployee(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		profileID := uuid.New()
		repo := &fakeRepo{
			findActiveFn: func(ctx context.Context, gotCompany, gotEmployee string) (*salaryprofile.SalaryProfile, error) {
				return &salaryprofile.SalaryProfile{
					ID:         profileID,
					EmployeeID: uuid.MustParse(employeeID),
					Active:     true,
					Amounts: []salaryprofile.ProfileAmount{
						{ComponentCode: "BASIC", Amount: 1500000},
					},
				}, nil
			},
		}
		svc := salaryprofile.NewService(db, repo)

		resp, err := svc.GetActiveByEmployee(ctx, companyID, employeeID)

		assert.NoError(t, err)
		assert.Equal(t, profileID.String(), resp.ID)
		assert.Equal(t, int64(1500000), resp.Amounts["BASIC"])
	})

	t.Run("no active profile", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{
			findActiveFn: func(ctx context.Context, companyID, employeeID string) (*salaryprofile.SalaryProfile, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := salaryprofile.NewService(db, repo)

		_, err := svc.GetActiveByEmployee(ctx, companyID, employeeID)

		assert.ErrorIs(t, err, profileerrors.ErrNoActiveProfile)
	})
}
