package services

import (
	"context"
	"errors"
	"shiftreport/internal/logger"
	"shiftreport/internal/models"
	"shiftreport/internal/utils"
	"strings"

	"go.uber.org/zap"
)

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	FindActiveAgents(ctx context.Context) ([]*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateUserFields(ctx context.Context, id int, input *models.UserInput) error
	DeleteUserByID(ctx context.Context, id int) error
}

var (
	ErrInvalidCredentials = errors.New("неверный логин или пароль")
	ErrNotAdmin           = errors.New("у пользователя нет прав администратора")
	ErrEmailRequired      = errors.New("email обязателен")
)

// RegisterUser создаёт учётку сотрудника с захешированным паролем.
// Пустой пароль допустим: такая учётка входит только по QR-токену.
func (s *AuthService) RegisterUser(ctx context.Context, input *models.User, plainPassword string) error {
	logger.Log.Info("Регистрация пользователя (service)", zap.String("email", input.Email))
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" {
		return ErrEmailRequired
	}

	if exists, err := s.repo.IsEmailTaken(ctx, input.Email); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки email", zap.Error(err))
		}
		return errors.New("адрес электронной почты уже зарегистрирован")
	}

	if plainPassword != "" {
		hashed, err := utils.HashPassword(plainPassword)
		if err != nil {
			logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
			return err
		}
		input.PasswordHash = hashed
	}

	if err := s.repo.CreateUser(ctx, input); err != nil {
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return err
	}
	logger.Log.Info("Пользователь зарегистрирован (service)", zap.String("email", input.Email))
	return nil
}

// LoginByEmail проверяет пару email/пароль и возвращает пользователя.
func (s *AuthService) LoginByEmail(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	logger.Log.Info("Попытка входа (service)", zap.String("email", email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Log.Warn("Пользователь не найден (service)", zap.String("email", email), zap.Error(err))
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	logger.Log.Info("Вход выполнен (service)", zap.Int("user_id", user.ID))
	return user, nil
}

// LoginAdmin — как LoginByEmail, но пускает только администраторов.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.LoginByEmail(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		logger.Log.Warn("Вход в админку без прав администратора (service)", zap.Int("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID — для восстановления текущего пользователя из сессии.
func (s *AuthService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logger.Log.Warn("Пользователь не найден по ID (service)", zap.Int("user_id", id), zap.Error(err))
	}
	return user, err
}

// ActiveAgents — активные сотрудники для выдачи QR на смену.
func (s *AuthService) ActiveAgents(ctx context.Context) ([]*models.User, error) {
	return s.repo.FindActiveAgents(ctx)
}

// ListUsers — все учётки для админского раздела управления пользователями.
func (s *AuthService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

// UpdateUser обновляет профиль и роли учётки. Пароль здесь не меняется.
func (s *AuthService) UpdateUser(ctx context.Context, id int, input *models.UserInput) error {
	logger.Log.Info("Обновление пользователя (service)", zap.Int("user_id", id))
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" {
		return ErrEmailRequired
	}

	if err := s.repo.UpdateUserFields(ctx, id, input); err != nil {
		logger.Log.Error("Ошибка обновления пользователя (service)", zap.Int("user_id", id), zap.Error(err))
		return err
	}
	return nil
}

// DeleteUser удаляет учётку сотрудника.
func (s *AuthService) DeleteUser(ctx context.Context, id int) error {
	logger.Log.Info("Удаление пользователя (service)", zap.Int("user_id", id))
	return s.repo.DeleteUserByID(ctx, id)
}
