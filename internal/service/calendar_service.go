package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/mapper"
	"github.com/meridiancg/backoffice-api/internal/repository"
)

// defaultWorkingHours is the baseline for a non-holiday working day
var defaultWorkingHours = decimal.NewFromInt(8)

// CalendarService manages named working-day calendars
type CalendarService struct {
	calendarRepo *repository.CalendarRepository
	logger       *zap.Logger
}

func NewCalendarService(calendarRepo *repository.CalendarRepository, logger *zap.Logger) *CalendarService {
	return &CalendarService{
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

func (s *CalendarService) Create(ctx context.Context, req *domain.CreateCalendarDayRequest) (*domain.CalendarDayDTO, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}

	day := &domain.CalendarDay{
		CalendarCode:    req.CalendarCode,
		Date:            date,
		IsHoliday:       req.IsHoliday,
		HolidayName:     req.HolidayName,
		FinancialPeriod: req.FinancialPeriod,
		WorkingHours:    defaultWorkingHours,
	}
	if req.WorkingHours != nil {
		day.WorkingHours = *req.WorkingHours
	}

	if err := s.calendarRepo.Create(ctx, day); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: calendar %q already has a row for %s", ErrConflict, req.CalendarCode, req.Date)
		}
		return nil, fmt.Errorf("failed to create calendar day: %w", err)
	}

	dto := mapper.ToCalendarDayDTO(day)
	return &dto, nil
}

func (s *CalendarService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalendarDayDTO, error) {
	day, err := s.calendarRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get calendar day: %w", err)
	}

	dto := mapper.ToCalendarDayDTO(day)
	return &dto, nil
}

func (s *CalendarService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCalendarDayRequest) (*domain.CalendarDayDTO, error) {
	day, err := s.calendarRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get calendar day: %w", err)
	}

	if req.IsHoliday != nil {
		day.IsHoliday = *req.IsHoliday
	}
	if req.HolidayName != nil {
		day.HolidayName = *req.HolidayName
	}
	if req.FinancialPeriod != nil {
		day.FinancialPeriod = *req.FinancialPeriod
	}
	if req.WorkingHours != nil {
		day.WorkingHours = *req.WorkingHours
	}

	if err := s.calendarRepo.Update(ctx, day); err != nil {
		return nil, fmt.Errorf("failed to update calendar day: %w", err)
	}

	dto := mapper.ToCalendarDayDTO(day)
	return &dto, nil
}

func (s *CalendarService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.calendarRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete calendar day: %w", err)
	}
	return nil
}

// List returns calendar days, optionally limited to a calendar code and a
// date window. The from date must not fall after the to date.
func (s *CalendarService) List(ctx context.Context, skip, limit int, calendarCode, fromDate, toDate string) (*domain.ListResponse[domain.CalendarDayDTO], error) {
	var from, to *time.Time
	if fromDate != "" {
		d, err := time.Parse("2006-01-02", fromDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date", ErrInvalidInput)
		}
		from = &d
	}
	if toDate != "" {
		d, err := time.Parse("2006-01-02", toDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date", ErrInvalidInput)
		}
		to = &d
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, ErrInvalidDateRange
	}

	days, total, err := s.calendarRepo.List(ctx, skip, limit, calendarCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar days: %w", err)
	}

	items := make([]domain.CalendarDayDTO, len(days))
	for i := range days {
		items[i] = mapper.ToCalendarDayDTO(&days[i])
	}

	return &domain.ListResponse[domain.CalendarDayDTO]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}
