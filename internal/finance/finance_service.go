package finance

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	financeerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/finance/errors"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/contextutil"
)

//go:generate mockgen -source=finance_service.go -destination=mock/finance_service_mock.go -package=mock
type Service interface {
	CreateEntry(ctx context.Context, companyID, actorID string, req CreateEntryRequest) (EntryResponse, error)
	GetEntries(ctx context.Context, companyID, month string) ([]EntryResponse, error)
	GetEntryByID(ctx context.Context, companyID, id string) (EntryResponse, error)
	DeleteEntry(ctx context.Context, companyID, id string) error
	GetMonthlySummary(ctx context.Context, companyID, month string) (MonthlySummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("finance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("finance.service")
	}
	return &service{db: db, repo: repo, logger: l, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) CreateEntry(
	ctx context.Context,
	companyID, actorID string,
	req CreateEntryRequest,
) (EntryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create finance entry requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("entry_type", req.EntryType),
	)

	cid, err := uuid.Parse(companyID)
	if err != nil {
		return EntryResponse{}, financeerrors.ErrInvalidCompanyID
	}
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return EntryResponse{}, financeerrors.ErrInvalidActorID
	}
	if req.Amount <= 0 {
		return EntryResponse{}, financeerrors.ErrInvalidAmount
	}
	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		return EntryResponse{}, financeerrors.ErrInvalidEntryDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create finance entry begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry := &Entry{
		ID:          uuid.New(),
		CompanyID:   cid,
		EntryType:   req.EntryType,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		EntryDate:   entryDate,
		RecordedBy:  actor,
	}

	if err := qtx.Create(ctx, entry); err != nil {
		s.logger.Error("create finance entry persist failed", zap.String("request_id", rid), zap.Error(err))
		return EntryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create finance entry commit failed", zap.String("request_id", rid), zap.Error(err))
		return EntryResponse{}, err
	}

	s.logger.Info("create finance entry success",
		zap.String("request_id", rid),
		zap.String("entry_id", entry.ID.String()),
		zap.String("entry_type", entry.EntryType),
		zap.Int64("amount", entry.Amount),
	)

	return mapToResponse(*entry), nil
}

func (s *service) GetEntries(ctx context.Context, companyID, month string) ([]EntryResponse, error) {
	s.logger.Debug("get finance entries requested",
		zap.String("company_id", companyID),
		zap.String("month", month),
	)

	from, to, err := s.monthRange(month)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.FindAllByCompanyAndRange(ctx, companyID, from, to)
	if err != nil {
		s.logger.Error("get finance entries failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(entries), nil
}

func (s *service) GetEntryByID(ctx context.Context, companyID, id string) (EntryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EntryResponse{}, financeerrors.ErrInvalidEntryID
	}
	entry, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("get finance entry by id failed", zap.Error(err))
		return EntryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*entry), nil
}

func (s *service) DeleteEntry(ctx context.Context, companyID, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete finance entry requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("entry_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return financeerrors.ErrInvalidEntryID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete finance entry success",
		zap.String("request_id", rid),
		zap.String("entry_id", id),
	)
	return nil
}

func (s *service) GetMonthlySummary(
	ctx context.Context,
	companyID, month string,
) (MonthlySummaryResponse, error) {
	s.logger.Debug("monthly finance summary requested",
		zap.String("company_id", companyID),
		zap.String("month", month),
	)

	from, to, err := s.monthRange(month)
	if err != nil {
		return MonthlySummaryResponse{}, err
	}

	totals, err := s.repo.SummarizeByCategory(ctx, companyID, from, to)
	if err != nil {
		s.logger.Error("monthly finance summary failed", zap.Error(err))
		return MonthlySummaryResponse{}, mapRepositoryError(err)
	}

	summary := MonthlySummaryResponse{
		Month:      from.Format("2006-01"),
		ByCategory: make([]CategoryTotalResponse, 0, len(totals)),
	}
	for _, total := range totals {
		switch total.EntryType {
		case EntryTypeRevenue:
			summary.TotalRevenue += total.Total
		case EntryTypeExpense:
			summary.TotalExpense += total.Total
		}
		summary.ByCategory = append(summary.ByCategory, CategoryTotalResponse{
			EntryType: total.EntryType,
			Category:  total.Category,
			Total:     total.Total,
		})
	}
	summary.Net = summary.TotalRevenue - summary.TotalExpense

	return summary, nil
}

// monthRange resolves "YYYY-MM" to a half-open [from, to) interval.
// A blank month means the current calendar month.
func (s *service) monthRange(month string) (time.Time, time.Time, error) {
	var from time.Time
	if strings.TrimSpace(month) == "" {
		now := s.now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return time.Time{}, time.Time{}, financeerrors.ErrInvalidMonth
		}
		from = parsed
	}
	return from, from.AddDate(0, 1, 0), nil
}

func mapToResponse(entry Entry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID.String(),
		EntryType:   entry.EntryType,
		Category:    entry.Category,
		Description: entry.Description,
		Amount:      entry.Amount,
		EntryDate:   entry.EntryDate.Format("2006-01-02"),
		RecordedBy:  entry.RecordedBy.String(),
	}
}

func mapToListResponse(entries []Entry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapToResponse(entry))
	}
	return responses
}
