package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/mapper"
	"github.com/meridiancg/backoffice-api/internal/repository"
)

// AccountService manages client, vendor and partner accounts
type AccountService struct {
	accountRepo     *repository.AccountRepository
	billingTermRepo *repository.BillingTermRepository
	logger          *zap.Logger
}

func NewAccountService(
	accountRepo *repository.AccountRepository,
	billingTermRepo *repository.BillingTermRepository,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accountRepo:     accountRepo,
		billingTermRepo: billingTermRepo,
		logger:          logger,
	}
}

func (s *AccountService) Create(ctx context.Context, req *domain.CreateAccountRequest) (*domain.AccountDTO, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", ErrInvalidInput, req.Type)
	}

	if req.BillingTermID != nil {
		if _, err := s.billingTermRepo.GetByID(ctx, *req.BillingTermID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: billing term does not exist", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to check billing term: %w", err)
		}
	}

	account := &domain.Account{
		CompanyName:   req.CompanyName,
		Type:          req.Type,
		Website:       req.Website,
		Phone:         req.Phone,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		Notes:         req.Notes,
		IsActive:      true,
		BillingTermID: req.BillingTermID,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: an account named %q already exists", ErrConflict, req.CompanyName)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created",
		zap.String("account_id", account.ID.String()),
		zap.String("company_name", account.CompanyName))

	dto := mapper.ToAccountDTO(account)
	return &dto, nil
}

func (s *AccountService) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccountWithDetailsDTO, error) {
	account, err := s.accountRepo.GetByIDWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	dto := mapper.ToAccountWithDetailsDTO(account)
	return &dto, nil
}

func (s *AccountService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateAccountRequest) (*domain.AccountDTO, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", ErrInvalidInput, *req.Type)
		}
		account.Type = *req.Type
	}
	if req.CompanyName != nil {
		account.CompanyName = *req.CompanyName
	}
	if req.Website != nil {
		account.Website = *req.Website
	}
	if req.Phone != nil {
		account.Phone = *req.Phone
	}
	if req.AddressLine1 != nil {
		account.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		account.AddressLine2 = *req.AddressLine2
	}
	if req.City != nil {
		account.City = *req.City
	}
	if req.State != nil {
		account.State = *req.State
	}
	if req.PostalCode != nil {
		account.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		account.Country = *req.Country
	}
	if req.Notes != nil {
		account.Notes = *req.Notes
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.BillingTermID != nil {
		if _, err := s.billingTermRepo.GetByID(ctx, *req.BillingTermID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: billing term does not exist", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to check billing term: %w", err)
		}
		account.BillingTermID = req.BillingTermID
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: an account named %q already exists", ErrConflict, account.CompanyName)
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	dto := mapper.ToAccountDTO(account)
	return &dto, nil
}

func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.accountRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("account deleted", zap.String("account_id", id.String()))
	return nil
}

// List returns a page of accounts. An unparseable type filter yields an
// empty result rather than an error.
func (s *AccountService) List(ctx context.Context, skip, limit int, accountType string, search string) (*domain.ListResponse[domain.AccountDTO], error) {
	var typeFilter *domain.AccountType
	if accountType != "" {
		t := domain.AccountType(accountType)
		if !t.IsValid() {
			return &domain.ListResponse[domain.AccountDTO]{
				Items: []domain.AccountDTO{},
				Total: 0,
				Skip:  skip,
				Limit: limit,
			}, nil
		}
		typeFilter = &t
	}

	accounts, total, err := s.accountRepo.List(ctx, skip, limit, typeFilter, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	items := make([]domain.AccountDTO, len(accounts))
	for i := range accounts {
		items[i] = mapper.ToAccountDTO(&accounts[i])
	}

	return &domain.ListResponse[domain.AccountDTO]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}
