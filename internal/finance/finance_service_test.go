package finance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/finance"
	financeerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/finance/errors"
)

type fakeFinanceRepo struct {
	entries map[string]*finance.Entry
}

func newFakeFinanceRepo() *fakeFinanceRepo {
	return &fakeFinanceRepo{entries: map[string]*finance.Entry{}}
}

func (f *fakeFinanceRepo) WithTx(tx *sql.Tx) finance.Repository { return f }

func (f *fakeFinanceRepo) Create(ctx context.Context, entry *finance.Entry) error {
	cp := *entry
	f.entries[entry.ID.String()] = &cp
	return nil
}

func (f *fakeFinanceRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*finance.Entry, error) {
	entry, ok := f.entries[id]
	if !ok || entry.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *entry
	return &cp, nil
}

func (f *fakeFinanceRepo) FindAllByCompanyAndRange(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) ([]finance.Entry, error) {
	var out []finance.Entry
	for _, entry := range f.entries {
		if entry.CompanyID.String() != companyID {
			continue
		}
		if entry.EntryDate.Before(from) || !entry.EntryDate.Before(to) {
			continue
		}
		out = append(out, *entry)
	}
	return out, nil
}

func (f *fakeFinanceRepo) Delete(ctx context.Context, companyID, id string) error {
	entry, ok := f.entries[id]
	if !ok || entry.CompanyID.String() != companyID {
		return gorm.ErrRecordNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeFinanceRepo) SummarizeByCategory(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) ([]finance.CategoryTotal, error) {
	entries, _ := f.FindAllByCompanyAndRange(ctx, companyID, from, to)
	byKey := map[string]*finance.CategoryTotal{}
	var keys []string
	for _, entry := range entries {
		key := entry.EntryType + "/" + entry.Category
		if _, ok := byKey[key]; !ok {
			byKey[key] = &finance.CategoryTotal{EntryType: entry.EntryType, Category: entry.Category}
			keys = append(keys, key)
		}
		byKey[key].Total += entry.Amount
	}
	out := make([]finance.CategoryTotal, 0, len(keys))
	for _, key := range keys {
		out = append(out, *byKey[key])
	}
	return out, nil
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

func TestFinanceService_CreateEntry(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("records a revenue entry", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := newFakeFinanceRepo()
		svc := finance.NewService(db, repo)

		expectTx(t, mock, true)
		resp, err := svc.CreateEntry(ctx, companyID, actorID, finance.CreateEntryRequest{
			EntryType: finance.EntryTypeRevenue,
			Category:  "Client Invoices",
			Amount:    2500000,
			EntryDate: "2026-08-05",
		})

		assert.NoError(t, err)
		assert.Equal(t, finance.EntryTypeRevenue, resp.EntryType)
		assert.Equal(t, int64(2500000), resp.Amount)
		assert.Equal(t, "2026-08-05", resp.EntryDate)
		assert.Equal(t, actorID, resp.RecordedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := finance.NewService(db, newFakeFinanceRepo())
		_, err := svc.CreateEntry(ctx, companyID, actorID, finance.CreateEntryRequest{
			EntryType: finance.EntryTypeExpense,
			Category:  "Rent",
			Amount:    0,
			EntryDate: "2026-08-01",
		})
		assert.ErrorIs(t, err, financeerrors.ErrInvalidAmount)
	})

	t.Run("rejects malformed entry dates", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := finance.NewService(db, newFakeFinanceRepo())
		_, err := svc.CreateEntry(ctx, companyID, actorID, finance.CreateEntryRequest{
			EntryType: finance.EntryTypeExpense,
			Category:  "Rent",
			Amount:    100,
			EntryDate: "05-08-2026",
		})
		assert.ErrorIs(t, err, financeerrors.ErrInvalidEntryDate)
	})
}

func TestFinanceService_GetMonthlySummary(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeFinanceRepo()
	svc := finance.NewService(db, repo)

	seed := []finance.CreateEntryRequest{
		{EntryType: finance.EntryTypeRevenue, Category: "Client Invoices", Amount: 2500000, EntryDate: "2026-08-05"},
		{EntryType: finance.EntryTypeRevenue, Category: "Client Invoices", Amount: 1500000, EntryDate: "2026-08-20"},
		{EntryType: finance.EntryTypeExpense, Category: "Rent", Amount: 600000, EntryDate: "2026-08-01"},
		{EntryType: finance.EntryTypeExpense, Category: "Payroll", Amount: 1400000, EntryDate: "2026-08-28"},
		// Next month, must not count.
		{EntryType: finance.EntryTypeExpense, Category: "Rent", Amount: 600000, EntryDate: "2026-09-01"},
	}
	for range seed {
		expectTx(t, mock, true)
	}
	for _, req := range seed {
		_, err := svc.CreateEntry(ctx, companyID, actorID, req)
		assert.NoError(t, err)
	}

	summary, err := svc.GetMonthlySummary(ctx, companyID, "2026-08")
	assert.NoError(t, err)
	assert.Equal(t, "2026-08", summary.Month)
	assert.Equal(t, int64(4000000), summary.TotalRevenue)
	assert.Equal(t, int64(2000000), summary.TotalExpense)
	assert.Equal(t, int64(2000000), summary.Net)
	assert.Len(t, summary.ByCategory, 3)

	_, err = svc.GetMonthlySummary(ctx, companyID, "August 2026")
	assert.ErrorIs(t, err, financeerrors.ErrInvalidMonth)

	entries, err := svc.GetEntries(ctx, companyID, "2026-08")
	assert.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestFinanceService_DeleteEntry(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeFinanceRepo()
	svc := finance.NewService(db, repo)

	expectTx(t, mock, true)
	created, err := svc.CreateEntry(ctx, companyID, actorID, finance.CreateEntryRequest{
		EntryType: finance.EntryTypeExpense,
		Category:  "Rent",
		Amount:    600000,
		EntryDate: "2026-08-01",
	})
	assert.NoError(t, err)

	expectTx(t, mock, true)
	assert.NoError(t, svc.DeleteEntry(ctx, companyID, created.ID))

	expectTx(t, mock, false)
	err = svc.DeleteEntry(ctx, companyID, created.ID)
	assert.ErrorIs(t, err, financeerrors.ErrEntryNotFound)
}
