package handlers

import (
	"net/http"
	"shiftreport/internal/config"
	"shiftreport/internal/logger"
	"shiftreport/internal/middleware"
	"shiftreport/internal/models"
	"shiftreport/internal/services"
	"shiftreport/internal/utils"
	helpers "shiftreport/internal/utils/helpers"
	"time"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type loginPage struct {
	Error string
}

func (h *AuthHandler) setSession(w http.ResponseWriter, user *models.User) error {
	ttl := h.cfg.GetSessionTTL()
	token, err := utils.GenerateSessionToken(h.cfg.SessionSecret, user.ID, user.IsAdmin, ttl)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// LoginForm godoc
// @Summary Форма входа
// @Tags auth
// @Produce html
// @Success 200 {string} string "HTML-страница"
// @Router /login [get]
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	helpers.Render(w, http.StatusOK, "login.html", loginPage{})
}

// Login godoc
// @Summary Вход по email и паролю
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce html
// @Param email formData string true "Email"
// @Param password formData string true "Пароль"
// @Success 302 {string} string "Редирект на /room_report"
// @Failure 401 {string} string "Неверные данные"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.LoginByEmail(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		helpers.Render(w, http.StatusUnauthorized, "login.html", loginPage{Error: "Invalid credentials"})
		return
	}

	if err := h.setSession(w, user); err != nil {
		logger.Log.Error("Не удалось создать сессию", zap.Error(err), zap.Int("user_id", user.ID))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/room_report", http.StatusFound)
}

// AdminLoginForm godoc
// @Summary Форма входа администратора
// @Tags auth
// @Produce html
// @Success 200 {string} string "HTML-страница"
// @Router /admin/login [get]
func (h *AuthHandler) AdminLoginForm(w http.ResponseWriter, r *http.Request) {
	helpers.Render(w, http.StatusOK, "admin_login.html", loginPage{})
}

// AdminLogin godoc
// @Summary Вход администратора
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce html
// @Param email formData string true "Email"
// @Param password formData string true "Пароль"
// @Success 302 {string} string "Редирект на /shift"
// @Failure 401 {string} string "Неверные данные"
// @Router /admin/login [post]
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.LoginAdmin(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		helpers.Render(w, http.StatusUnauthorized, "admin_login.html", loginPage{Error: "Invalid admin credentials"})
		return
	}

	if err := h.setSession(w, user); err != nil {
		logger.Log.Error("Не удалось создать сессию", zap.Error(err), zap.Int("user_id", user.ID))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/shift", http.StatusFound)
}

// Logout godoc
// @Summary Выход
// @Tags auth
// @Success 302 {string} string "Редирект на /login"
// @Router /logout [get]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Healthz godoc
// @Summary Проверка живости сервиса
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *AuthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
