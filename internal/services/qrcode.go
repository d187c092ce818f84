package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"shiftreport/internal/logger"
	"shiftreport/internal/models"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// QRCodeService готовит страницу смены: выдаёт каждому активному сотруднику
// свежий одноразовый токен и кэширует QR-картинку под именем токена.
type QRCodeService struct {
	authService  *AuthService
	tokenService *LoginTokenService
	baseURL      string
	dir          string
}

// ShiftEntry — строка списка на странице /shift.
type ShiftEntry struct {
	Agent    *models.User
	QRPath   string
	LoginURL string
}

func NewQRCodeService(authService *AuthService, tokenService *LoginTokenService, baseURL, dir string) (*QRCodeService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог для QR-кодов: %w", err)
	}
	return &QRCodeService{
		authService:  authService,
		tokenService: tokenService,
		baseURL:      baseURL,
		dir:          dir,
	}, nil
}

// BuildShiftEntries выдаёт токены активным сотрудникам и рендерит QR-коды.
// Прежние токены сотрудников при этом молча аннулируются (Issue перезаписывает).
func (s *QRCodeService) BuildShiftEntries(ctx context.Context) ([]ShiftEntry, error) {
	agents, err := s.authService.ActiveAgents(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]ShiftEntry, 0, len(agents))
	for _, agent := range agents {
		token, err := s.tokenService.Issue(ctx, agent.ID)
		if err != nil {
			logger.Log.Error("Не удалось выдать токен сотруднику", zap.Int("user_id", agent.ID), zap.Error(err))
			return nil, err
		}

		loginURL := fmt.Sprintf("%s/qr_login?token=%s", s.baseURL, token)
		pngPath := filepath.Join(s.dir, token+".png")
		if err := qrcode.WriteFile(loginURL, qrcode.Medium, 300, pngPath); err != nil {
			logger.Log.Error("Не удалось записать QR-код", zap.String("path", pngPath), zap.Error(err))
			return nil, err
		}

		entries = append(entries, ShiftEntry{
			Agent:    agent,
			QRPath:   "/qrcodes/" + token + ".png",
			LoginURL: loginURL,
		})
	}

	logger.Log.Info("Страница смены подготовлена", zap.Int("agents", len(entries)))
	return entries, nil
}

// Dir — каталог с кэшированными QR-картинками (для раздачи статики).
func (s *QRCodeService) Dir() string {
	return s.dir
}
