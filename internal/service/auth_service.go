package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/auth"
	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/logger"
	"github.com/meridiancg/backoffice-api/internal/mapper"
	"github.com/meridiancg/backoffice-api/internal/repository"
)

// AuthService authenticates employees and issues access tokens
type AuthService struct {
	employeeRepo *repository.EmployeeRepository
	tokens       *auth.TokenIssuer
	logger       *zap.Logger
}

func NewAuthService(
	employeeRepo *repository.EmployeeRepository,
	tokens *auth.TokenIssuer,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		tokens:       tokens,
		logger:       logger,
	}
}

// Login verifies credentials and returns a signed access token. Wrong email
// and wrong password both map to ErrUnauthorized so the response does not
// reveal which one failed.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	employee, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("login rejected: bad credentials", zap.String("email", req.Email))
		return nil, ErrUnauthorized
	}

	if !employee.CanAuthenticate() {
		s.logger.Info("login rejected: inactive employee",
			zap.String("employee_id", employee.ID.String()),
			zap.String("status", string(employee.Status)))
		return nil, ErrAccountInactive
	}

	token, err := s.tokens.Issue(employee.ID, employee.Email, employee.FullName(), employee.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.WithEmployee(s.logger, employee.ID.String(), employee.Email).Info("employee logged in")

	return &domain.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
		Employee:    mapper.ToEmployeeDTO(employee),
	}, nil
}

// Me returns the employee behind the authenticated request context
func (s *AuthService) Me(ctx context.Context) (*domain.EmployeeDTO, error) {
	principal, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	employee, err := s.employeeRepo.GetByID(ctx, principal.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}

	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}
