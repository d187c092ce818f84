package handlers

import (
	"errors"
	"net/http"
	"shiftreport/internal/logger"
	"shiftreport/internal/services"
	helpers "shiftreport/internal/utils/helpers"

	"go.uber.org/zap"
)

type ShiftHandler struct {
	qrService    *services.QRCodeService
	tokenService *services.LoginTokenService
	authHandler  *AuthHandler
}

func NewShiftHandler(qrService *services.QRCodeService, tokenService *services.LoginTokenService, authHandler *AuthHandler) *ShiftHandler {
	return &ShiftHandler{
		qrService:    qrService,
		tokenService: tokenService,
		authHandler:  authHandler,
	}
}

type shiftPage struct {
	Entries []services.ShiftEntry
}

// Shift godoc
// @Summary Страница смены с QR-кодами для входа сотрудников
// @Description Выдаёт каждому активному сотруднику свежий одноразовый токен; прежние токены аннулируются.
// @Tags shift
// @Produce html
// @Success 200 {string} string "HTML-страница"
// @Failure 500 {string} string "Ошибка сервера"
// @Router /shift [get]
func (h *ShiftHandler) Shift(w http.ResponseWriter, r *http.Request) {
	entries, err := h.qrService.BuildShiftEntries(r.Context())
	if err != nil {
		logger.Log.Error("Не удалось подготовить страницу смены", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	helpers.Render(w, http.StatusOK, "shift.html", shiftPage{Entries: entries})
}

// QRLogin godoc
// @Summary Вход по одноразовому токену из QR-кода
// @Tags auth
// @Param token query string true "Одноразовый токен"
// @Success 302 {string} string "Редирект на /room_report"
// @Failure 400 {string} string "Missing token"
// @Failure 401 {string} string "Invalid or consumed token"
// @Router /qr_login [get]
func (h *ShiftHandler) QRLogin(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusBadRequest)
		return
	}

	user, err := h.tokenService.Consume(r.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrTokenNoMatch) {
			http.Error(w, "Invalid or consumed token", http.StatusUnauthorized)
			return
		}
		logger.Log.Error("Ошибка входа по QR", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.authHandler.setSession(w, user); err != nil {
		logger.Log.Error("Не удалось создать сессию после QR-входа", zap.Error(err), zap.Int("user_id", user.ID))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/room_report", http.StatusFound)
}
