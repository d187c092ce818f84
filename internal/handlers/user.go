package handlers

import (
	"fmt"
	"net/http"
	"shiftreport/internal/logger"
	"shiftreport/internal/models"
	"shiftreport/internal/services"
	helpers "shiftreport/internal/utils/helpers"

	"go.uber.org/zap"
)

type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type userListPage struct {
	Users []*models.User
}

type userFormPage struct {
	Error string
	ID    int
	Form  *models.UserInput
}

type userShowPage struct {
	User *models.User
}

func userInputFromForm(r *http.Request) *models.UserInput {
	checked := func(name string) bool { return r.FormValue(name) != "" }
	return &models.UserInput{
		Email:    r.FormValue("email"),
		Nickname: r.FormValue("nickname"),
		Password: r.FormValue("password"),
		IsAdmin:  checked("is_admin"),
		IsNurse:  checked("is_nurse"),
		IsHCA:    checked("is_hca"),
		Active:   checked("active"),
	}
}

// Index godoc
// @Summary Список учётных записей
// @Tags users
// @Produce html
// @Success 200 {string} string "HTML-страница"
// @Router /users [get]
func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		logger.Log.Error("Не удалось получить пользователей", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	helpers.Render(w, http.StatusOK, "users_index.html", userListPage{Users: users})
}

// NewForm godoc
// @Summary Форма новой учётной записи
// @Tags users
// @Produce html
// @Success 200 {string} string "HTML-страница"
// @Router /users/new [get]
func (h *UserHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	helpers.Render(w, http.StatusOK, "users_new.html", userFormPage{Form: &models.UserInput{Active: true}})
}

// Create godoc
// @Summary Создать учётную запись
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce html
// @Success 302 {string} string "Редирект на созданную учётку"
// @Failure 422 {string} string "Ошибка валидации"
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	input := userInputFromForm(r)
	user := &models.User{
		Email:    input.Email,
		Nickname: input.Nickname,
		IsAdmin:  input.IsAdmin,
		IsNurse:  input.IsNurse,
		IsHCA:    input.IsHCA,
		Active:   input.Active,
	}

	if err := h.authService.RegisterUser(r.Context(), user, input.Password); err != nil {
		helpers.Render(w, http.StatusUnprocessableEntity, "users_new.html", userFormPage{
			Error: err.Error(),
			Form:  input,
		})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/users/%d", user.ID), http.StatusFound)
}

// Show godoc
// @Summary Учётная запись
// @Tags users
// @Produce html
// @Param id path int true "ID пользователя"
// @Success 200 {string} string "HTML-страница"
// @Failure 404 {string} string "Не найдено"
// @Router /users/{id} [get]
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	helpers.Render(w, http.StatusOK, "users_show.html", userShowPage{User: user})
}

// EditForm godoc
// @Summary Форма редактирования учётной записи
// @Tags users
// @Produce html
// @Param id path int true "ID пользователя"
// @Success 200 {string} string "HTML-страница"
// @Failure 404 {string} string "Не найдено"
// @Router /users/{id}/edit [get]
func (h *UserHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	helpers.Render(w, http.StatusOK, "users_edit.html", userFormPage{
		ID: user.ID,
		Form: &models.UserInput{
			Email:    user.Email,
			Nickname: user.Nickname,
			IsAdmin:  user.IsAdmin,
			IsNurse:  user.IsNurse,
			IsHCA:    user.IsHCA,
			Active:   user.Active,
		},
	})
}

// Update godoc
// @Summary Обновить учётную запись
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce html
// @Param id path int true "ID пользователя"
// @Success 302 {string} string "Редирект на учётку"
// @Failure 422 {string} string "Ошибка валидации"
// @Router /users/{id} [post]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	input := userInputFromForm(r)
	if err := h.authService.UpdateUser(r.Context(), id, input); err != nil {
		helpers.Render(w, http.StatusUnprocessableEntity, "users_edit.html", userFormPage{
			Error: err.Error(),
			ID:    id,
			Form:  input,
		})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/users/%d", id), http.StatusFound)
}

// Delete godoc
// @Summary Удалить учётную запись
// @Tags users
// @Param id path int true "ID пользователя"
// @Success 302 {string} string "Редирект на список"
// @Router /users/{id}/delete [post]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.authService.DeleteUser(r.Context(), id); err != nil {
		logger.Log.Error("Не удалось удалить пользователя", zap.Int("user_id", id), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/users", http.StatusFound)
}
