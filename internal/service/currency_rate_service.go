package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/mapper"
	"github.com/meridiancg/backoffice-api/internal/repository"
)

// CurrencyRateService manages conversion rates, both manually entered and
// synced from the finance warehouse
type CurrencyRateService struct {
	rateRepo *repository.CurrencyRateRepository
	logger   *zap.Logger
}

func NewCurrencyRateService(rateRepo *repository.CurrencyRateRepository, logger *zap.Logger) *CurrencyRateService {
	return &CurrencyRateService{
		rateRepo: rateRepo,
		logger:   logger,
	}
}

func (s *CurrencyRateService) Create(ctx context.Context, req *domain.CreateCurrencyRateRequest) (*domain.CurrencyRateDTO, error) {
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive", ErrInvalidInput)
	}

	date, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid effective date", ErrInvalidInput)
	}

	from := strings.ToUpper(req.FromCurrency)
	to := strings.ToUpper(req.ToCurrency)
	if from == to {
		return nil, fmt.Errorf("%w: from and to currencies must differ", ErrInvalidInput)
	}

	rate := &domain.CurrencyRate{
		FromCurrency:  from,
		ToCurrency:    to,
		Rate:          req.Rate,
		EffectiveDate: date,
		Source:        domain.CurrencyRateSourceManual,
	}

	if err := s.rateRepo.Create(ctx, rate); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a rate for %s/%s on %s already exists", ErrConflict, from, to, req.EffectiveDate)
		}
		return nil, fmt.Errorf("failed to create currency rate: %w", err)
	}

	s.logger.Info("currency rate created",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("rate", rate.Rate.String()),
		zap.String("effective_date", req.EffectiveDate))

	dto := mapper.ToCurrencyRateDTO(rate)
	return &dto, nil
}

func (s *CurrencyRateService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CurrencyRateDTO, error) {
	rate, err := s.rateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get currency rate: %w", err)
	}

	dto := mapper.ToCurrencyRateDTO(rate)
	return &dto, nil
}

// GetLatest returns the most recent rate for a currency pair effective at or
// before the given date. Defaults to today when no date is given.
func (s *CurrencyRateService) GetLatest(ctx context.Context, from, to string, asOf string) (*domain.CurrencyRateDTO, error) {
	asOfDate := time.Now().UTC()
	if asOf != "" {
		d, err := time.Parse("2006-01-02", asOf)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid as-of date", ErrInvalidInput)
		}
		asOfDate = d
	}

	rate, err := s.rateRepo.GetLatest(ctx, strings.ToUpper(from), strings.ToUpper(to), asOfDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest currency rate: %w", err)
	}

	dto := mapper.ToCurrencyRateDTO(rate)
	return &dto, nil
}

func (s *CurrencyRateService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCurrencyRateRequest) (*domain.CurrencyRateDTO, error) {
	rate, err := s.rateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get currency rate: %w", err)
	}

	if req.Rate != nil {
		if !req.Rate.IsPositive() {
			return nil, fmt.Errorf("%w: rate must be positive", ErrInvalidInput)
		}
		rate.Rate = *req.Rate
	}

	if err := s.rateRepo.Update(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to update currency rate: %w", err)
	}

	dto := mapper.ToCurrencyRateDTO(rate)
	return &dto, nil
}

func (s *CurrencyRateService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.rateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete currency rate: %w", err)
	}
	return nil
}

// List returns a page of rates. An unparseable source filter yields an
// empty result rather than an error.
func (s *CurrencyRateService) List(ctx context.Context, skip, limit int, from, to, source string) (*domain.ListResponse[domain.CurrencyRateDTO], error) {
	var sourceFilter *domain.CurrencyRateSource
	if source != "" {
		src := domain.CurrencyRateSource(source)
		if src != domain.CurrencyRateSourceManual && src != domain.CurrencyRateSourceWarehouse {
			return &domain.ListResponse[domain.CurrencyRateDTO]{
				Items: []domain.CurrencyRateDTO{},
				Total: 0,
				Skip:  skip,
				Limit: limit,
			}, nil
		}
		sourceFilter = &src
	}

	rates, total, err := s.rateRepo.List(ctx, skip, limit, strings.ToUpper(from), strings.ToUpper(to), sourceFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list currency rates: %w", err)
	}

	items := make([]domain.CurrencyRateDTO, len(rates))
	for i := range rates {
		items[i] = mapper.ToCurrencyRateDTO(&rates[i])
	}

	return &domain.ListResponse[domain.CurrencyRateDTO]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}
