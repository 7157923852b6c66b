package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotelres/config"
	"hotelres/infras/jwt"
	"hotelres/infras/otel"
	"hotelres/internal/domains/auth/model"
	"hotelres/internal/domains/auth/model/dto"
	"hotelres/internal/domains/auth/repository"
	"hotelres/shared/constant"
	"hotelres/shared/failure"
	"hotelres/shared/password"
	"hotelres/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Guest identity handed out when any login is accepted.
const (
	guestFirstName = "John"
	guestLastName  = "Doe"
	guestPhone     = "+63 917 123 4567"
)

// Auth is the sign-in collaborator. Checkout only ever sees the Identity it returns.
type Auth interface {
	Signup(ctx context.Context, req dto.SignupRequest) (dto.SessionResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.SessionResponse, error)
	Refresh(ctx context.Context, req dto.RefreshTokenRequest) (dto.SessionResponse, error)
	Restore(ctx context.Context, accessToken string) (model.Identity, error)
}

type serviceImpl struct {
	repo       repository.Account
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(repo repository.Account, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		repo:       repo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Signup(ctx context.Context, req dto.SignupRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Signup")
	defer scope.End()
	defer scope.TraceIfError(err)

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	account := model.Account{
		Identity:     req.ToIdentity(uuid.NewString()),
		PasswordHash: hashedPassword,
		CreatedAt:    timezone.Now(),
	}

	if err = s.repo.Insert(ctx, account); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return res, failure.Conflict("email already registered")
		}

		log.Error().Err(err).Msg("failed to create account")

		return res, fmt.Errorf("failed to create account: %w", err)
	}

	return s.session(account.Identity)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	email := dto.NormalizeEmail(req.Email)
	if email == constant.Empty || req.Password == constant.Empty {
		return res, failure.InvalidCredentials
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) && s.cfg.Auth.AcceptAnyLogin {
		return s.loginGuest(ctx, email, req.Password)
	}

	if err != nil {
		log.Warn().Str("email", email).Msg("login attempt with non-existent email")

		return res, failure.InvalidCredentials
	}

	if err := password.Verify(req.Password, account.PasswordHash); err != nil {
		log.Warn().Str("email", email).Msg("login attempt with wrong password")

		return res, failure.InvalidCredentials
	}

	return s.session(account.Identity)
}

// loginGuest registers an unknown email as a guest so later restores resolve.
func (s *serviceImpl) loginGuest(ctx context.Context, email, plain string) (res dto.SessionResponse, err error) {
	hashedPassword, err := password.Hash(plain)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	account := model.Account{
		Identity: model.Identity{
			ID:        uuid.NewString(),
			FirstName: guestFirstName,
			LastName:  guestLastName,
			Email:     email,
			Phone:     guestPhone,
		},
		PasswordHash: hashedPassword,
		CreatedAt:    timezone.Now(),
	}

	if err = s.repo.Insert(ctx, account); err != nil {
		log.Error().Err(err).Msg("failed to create guest account")

		return res, fmt.Errorf("failed to create guest account: %w", err)
	}

	log.Info().Str("account_id", account.ID).Msg("guest account created on login")

	return s.session(account.Identity)
}

func (s *serviceImpl) Refresh(ctx context.Context, req dto.RefreshTokenRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	account, err := s.repo.GetByID(ctx, claims.AccountID())
	if err != nil {
		return res, failure.Unauthorized("invalid refresh token")
	}

	return s.session(account.Identity)
}

func (s *serviceImpl) Restore(ctx context.Context, accessToken string) (identity model.Identity, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Restore")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(accessToken, jwt.AccessToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return identity, failure.Unauthorized("session has expired")
		}

		return identity, failure.Unauthorized("invalid session token")
	}

	account, err := s.repo.GetByID(ctx, claims.AccountID())
	if err != nil {
		log.Warn().Str("account_id", claims.AccountID()).Msg("session token for unknown account")

		return identity, failure.Unauthorized("invalid session token")
	}

	return account.Identity, nil
}

func (s *serviceImpl) session(identity model.Identity) (res dto.SessionResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(identity.ID, identity.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair, identity)

	return res, nil
}
