package company_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/company"
	companyerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/company/errors"
)

type fakeCompanyRepo struct {
	companies map[string]*company.Company
	names     map[string]bool
	createErr error
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{
		companies: map[string]*company.Company{},
		names:     map[string]bool{},
	}
}

func (f *fakeCompanyRepo) WithTx(tx *sql.Tx) company.Repository { return f }

func (f *fakeCompanyRepo) Create(ctx context.Context, c *company.Company) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.names[c.Name] {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_company_name"}
	}
	cp := *c
	f.companies[c.ID.String()] = &cp
	f.names[c.Name] = true
	return nil
}

func (f *fakeCompanyRepo) FindByID(ctx context.Context, id string) (*company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCompanyRepo) FindAll(ctx context.Context) ([]company.Company, error) {
	var out []company.Company
	for _, c := range f.companies {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, c *company.Company) error {
	cp := *c
	f.companies[c.ID.String()] = &cp
	return nil
}

type fakeSeeder struct {
	name   string
	calls  []string
	err    error
	record *[]string
}

func (f *fakeSeeder) SeedDefaults(ctx context.Context, companyID string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, companyID)
	if f.record != nil {
		*f.record = append(*f.record, f.name)
	}
	return nil
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

func validCompanyRequest() company.CreateCompanyRequest {
	return company.CreateCompanyRequest{
		Name:  "Meridian Textiles",
		Email: "Ops@Meridian.example.com",
		Phone: "+91-9800000001",
		City:  "Coimbatore",
		State: "Tamil Nadu",
		GSTIN: "33aabcm1234f1z5",
		PAN:   "aabcm1234f",
	}
}

func TestCompanyService_Onboard(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the company and runs every seeder in order", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := newFakeCompanyRepo()
		var order []string
		components := &fakeSeeder{name: "components", record: &order}
		payrollDefaults := &fakeSeeder{name: "payroll", record: &order}
		leaveDefaults := &fakeSeeder{name: "leave", record: &order}
		svc := company.NewService(db, repo, []company.Seeder{components, payrollDefaults, leaveDefaults})

		expectTx(t, mock, true)
		resp, err := svc.Onboard(ctx, validCompanyRequest())

		assert.NoError(t, err)
		assert.Equal(t, "Meridian Textiles", resp.Name)
		assert.Equal(t, "ops@meridian.example.com", resp.Email)
		assert.Equal(t, "India", resp.Country)
		assert.Equal(t, "33AABCM1234F1Z5", resp.GSTIN)
		assert.Equal(t, "AABCM1234F", resp.PAN)
		assert.True(t, resp.Active)

		assert.Equal(t, []string{"components", "payroll", "leave"}, order)
		assert.Equal(t, []string{resp.ID}, components.calls)
		assert.Equal(t, []string{resp.ID}, leaveDefaults.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := newFakeCompanyRepo()
		svc := company.NewService(db, repo, nil)

		expectTx(t, mock, true)
		_, err := svc.Onboard(ctx, validCompanyRequest())
		assert.NoError(t, err)

		expectTx(t, mock, false)
		_, err = svc.Onboard(ctx, validCompanyRequest())
		assert.ErrorIs(t, err, companyerrors.ErrDuplicateCompanyName)
	})

	t.Run("seeder failure keeps the company and reports provisioning", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := newFakeCompanyRepo()
		broken := &fakeSeeder{name: "payroll", err: errors.New("settings insert failed")}
		svc := company.NewService(db, repo, []company.Seeder{broken})

		expectTx(t, mock, true)
		_, err := svc.Onboard(ctx, validCompanyRequest())

		assert.ErrorIs(t, err, companyerrors.ErrSeedingFailed)
		// The row committed before seeding ran, so it survives the failure.
		assert.Len(t, repo.companies, 1)
	})

	t.Run("persist failure skips seeding entirely", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := newFakeCompanyRepo()
		repo.createErr = errors.New("db error")
		seeder := &fakeSeeder{name: "components"}
		svc := company.NewService(db, repo, []company.Seeder{seeder})

		expectTx(t, mock, false)
		_, err := svc.Onboard(ctx, validCompanyRequest())

		assert.Error(t, err)
		assert.Empty(t, seeder.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCompanyService_Update(t *testing.T) {
	ctx := context.Background()

	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeCompanyRepo()
	svc := company.NewService(db, repo, nil)

	expectTx(t, mock, true)
	created, err := svc.Onboard(ctx, validCompanyRequest())
	assert.NoError(t, err)

	expectTx(t, mock, true)
	updated, err := svc.Update(ctx, created.ID, company.UpdateCompanyRequest{
		Name:    "Meridian Textiles Pvt Ltd",
		Email:   "accounts@meridian.example.com",
		Country: "India",
		Active:  false,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Meridian Textiles Pvt Ltd", updated.Name)
	assert.False(t, updated.Active)

	_, err = svc.Update(ctx, "not-a-uuid", company.UpdateCompanyRequest{Name: "X", Email: "x@example.com"})
	assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)

	expectTx(t, mock, false)
	_, err = svc.Update(ctx, "3b7c6f1e-0000-4000-8000-000000000000", company.UpdateCompanyRequest{
		Name:  "Ghost",
		Email: "ghost@example.com",
	})
	assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
}

func TestCompanyService_GetByID(t *testing.T) {
	ctx := context.Background()

	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeCompanyRepo()
	svc := company.NewService(db, repo, nil)

	expectTx(t, mock, true)
	created, err := svc.Onboard(ctx, validCompanyRequest())
	assert.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	_, err = svc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)
}
