package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/application/usecase"
	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/authz"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
	"github.com/jhoicas/roteiro-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y logout.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	sessions    ports.SessionStore
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. sessions es opcional.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, sessions ports.SessionStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, sessions: sessions, jwtCfg: jwtCfg}
}

// Login verifica empresa/usuario/password, genera JWT con las capacidades efectivas y retorna token + usuario.
// Usuario inexistente y password incorrecto responden igual (ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if in.CompanyID == "" || username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.CompanyID, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserActive || company.Status != "active" {
		return nil, domain.ErrForbidden
	}
	caps, err := authz.Effective(user)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Subject{
		UserID:       user.ID,
		CompanyID:    user.CompanyID,
		Role:         user.Role,
		Capabilities: caps.Names(),
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}

// Logout descarta la sesión de navegación del operador. El token sigue siendo válido hasta expirar.
func (uc *AuthUseCase) Logout(ctx context.Context, companyID, userID string) error {
	if uc.sessions == nil {
		return nil
	}
	return uc.sessions.Delete(ctx, companyID, userID)
}
