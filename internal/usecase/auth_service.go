package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	idgen "github.com/riskibarqy/blueprint-fantasy/internal/platform/id"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type SignupInput struct {
	Name     string `validate:"required,max=80"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type AuthService struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	idGen       idgen.Generator
	logger      *logging.Logger
	hashCost    int
}

func NewAuthService(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		idGen:       idGen,
		logger:      logger,
		hashCost:    bcrypt.DefaultCost,
	}
}

// WithHashCost lowers the bcrypt cost, mostly for tests.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		s.hashCost = cost
	}
	return s
}

// Signup registers a user and signs them in.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Signup")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput(ctx, input); err != nil {
		return user.User{}, err
	}

	_, exists, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return user.User{}, storageError(err, "get user by email")
	}
	if exists {
		return user.User{}, errors.Wrap(ErrConflict, "email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return user.User{}, errors.Wrap(err, "hash password")
	}

	userID, err := s.idGen.NewID("u")
	if err != nil {
		return user.User{}, errors.Wrap(err, "generate user id")
	}

	u := user.User{
		ID:       userID,
		Name:     input.Name,
		Email:    input.Email,
		Username: user.UsernameFromEmail(input.Email),
	}
	if err := u.Validate(); err != nil {
		return user.User{}, errors.Wrap(ErrInvalidInput, err.Error())
	}

	if err := s.userRepo.Create(ctx, user.Account{User: u, PasswordHash: hash}); err != nil {
		return user.User{}, storageError(err, "create user")
	}
	if err := s.sessionRepo.Set(ctx, u); err != nil {
		return user.User{}, storageError(err, "start session")
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Login checks the credentials and makes the user the current session.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput(ctx, input); err != nil {
		return user.User{}, err
	}

	account, exists, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return user.User{}, storageError(err, "get user by email")
	}
	if !exists {
		return user.User{}, errors.Wrap(ErrUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(input.Password)); err != nil {
		return user.User{}, errors.Wrap(ErrUnauthorized, "invalid credentials")
	}

	if err := s.sessionRepo.Set(ctx, account.User); err != nil {
		return user.User{}, storageError(err, "start session")
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", account.User.ID)
	return account.User, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Logout")
	defer span.End()

	if err := s.sessionRepo.Clear(ctx); err != nil {
		return storageError(err, "clear session")
	}
	return nil
}

// CurrentPrincipal resolves the signed-in user. No session yields the
// anonymous principal.
func (s *AuthService) CurrentPrincipal(ctx context.Context) (user.Principal, error) {
	u, ok, err := s.sessionRepo.Current(ctx)
	if err != nil {
		return user.Principal{}, storageError(err, "read session")
	}
	if !ok {
		return user.Principal{}, nil
	}
	return user.PrincipalOf(u), nil
}
