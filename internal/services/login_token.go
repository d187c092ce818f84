package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"shiftreport/internal/logger"
	"shiftreport/internal/models"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// LoginTokenService владеет жизненным циклом одноразовых токенов входа по QR.
// Всё состояние живёт в хранилище; корректность при конкурентных запросах
// обеспечивают атомарные операции репозитория, а не блокировки в процессе.
type LoginTokenService struct {
	repo     LoginTokenRepo
	tokenTTL time.Duration
}

type LoginTokenRepo interface {
	SetLoginToken(ctx context.Context, userID int, token string, issuedAt time.Time) error
	ConsumeLoginToken(ctx context.Context, token string, issuedAfter time.Time) (*models.User, error)
}

var (
	ErrTokenUserNotFound = errors.New("пользователь не найден")
	ErrTokenNoMatch      = errors.New("токен не найден или уже использован")
)

func NewLoginTokenService(repo LoginTokenRepo, tokenTTL time.Duration) *LoginTokenService {
	return &LoginTokenService{repo: repo, tokenTTL: tokenTTL}
}

// Issue выдаёт пользователю новый одноразовый токен, перезаписывая прежний.
// Возвращает ErrTokenUserNotFound, если пользователя с таким id нет.
func (s *LoginTokenService) Issue(ctx context.Context, userID int) (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		logger.Log.Error("Ошибка генерации одноразового токена", zap.Error(err), zap.Int("user_id", userID))
		return "", err
	}
	token := hex.EncodeToString(raw)

	if err := s.repo.SetLoginToken(ctx, userID, token, time.Now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Log.Warn("Выдача токена несуществующему пользователю", zap.Int("user_id", userID))
			return "", ErrTokenUserNotFound
		}
		logger.Log.Error("Ошибка сохранения одноразового токена", zap.Error(err), zap.Int("user_id", userID))
		return "", err
	}

	logger.Log.Info("Одноразовый токен выдан", zap.Int("user_id", userID))
	return token, nil
}

// Consume атомарно гасит токен и возвращает его владельца. Повторный вызов
// с тем же токеном, как и любой незнакомый или истёкший токен, даёт
// ErrTokenNoMatch. Пустой токен отсекается без обращения к хранилищу.
func (s *LoginTokenService) Consume(ctx context.Context, token string) (*models.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrTokenNoMatch
	}

	user, err := s.repo.ConsumeLoginToken(ctx, token, time.Now().Add(-s.tokenTTL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Log.Warn("Попытка входа по неизвестному или погашенному токену")
			return nil, ErrTokenNoMatch
		}
		logger.Log.Error("Ошибка гашения одноразового токена", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Вход по одноразовому токену", zap.Int("user_id", user.ID))
	return user, nil
}
