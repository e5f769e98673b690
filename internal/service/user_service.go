package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/repository/repoargs"
	"github.com/fsdevblog/usdt-exchange/pkg/uow"
)

type UserService struct {
	uow      uow.UOW
	userRepo UserRepository
}

func NewUserService(u uow.UOW) (*UserService, error) {
	userRepo, err := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &UserService{
		uow:      u,
		userRepo: userRepo,
	}, nil
}

type RegisterUserArgs struct {
	ExternalID string
	Username   string
	FirstName  string
	LastName   string
}

// Register регистрирует пользователя по внешнему идентификатору. Повторная регистрация возвращает
// существующего пользователя. Второе значение сообщает, был ли пользователь создан.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, bool, error) {
	externalID := strings.TrimSpace(args.ExternalID)
	if externalID == "" {
		return nil, false, fmt.Errorf("registering user: %w: empty external id", domain.ErrInvalidInput)
	}

	existing, findErr := s.userRepo.FindByExternalID(ctx, externalID)
	if findErr == nil {
		return existing, false, nil
	}
	if !errors.Is(findErr, domain.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("registering user: %w", findErr)
	}

	user, createErr := s.userRepo.Create(ctx, repoargs.CreateUser{
		ExternalID: externalID,
		Username:   args.Username,
		FirstName:  args.FirstName,
		LastName:   args.LastName,
	})
	if createErr != nil {
		// параллельная регистрация того же пользователя.
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			again, againErr := s.userRepo.FindByExternalID(ctx, externalID)
			if againErr != nil {
				return nil, false, fmt.Errorf("registering user: %w", againErr)
			}
			return again, false, nil
		}
		return nil, false, fmt.Errorf("registering user: %w: %w", domain.ErrPersistence, createErr)
	}
	return user, true, nil
}

// FindByExternalID возвращает зарегистрированного пользователя или domain.ErrUserNotRegistered.
func (s *UserService) FindByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	user, err := s.userRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", externalID, domain.ErrUserNotRegistered)
		}
		return nil, fmt.Errorf("user %q: %w", externalID, err)
	}
	return user, nil
}
