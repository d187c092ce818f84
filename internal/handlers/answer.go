package handlers

import (
	"fmt"
	"net/http"
	"shiftreport/internal/logger"
	"shiftreport/internal/services"

	"go.uber.org/zap"
)

type AnswerHandler struct {
	service *services.RoomReportService
}

func NewAnswerHandler(service *services.RoomReportService) *AnswerHandler {
	return &AnswerHandler{service: service}
}

// Create godoc
// @Summary Добавить вопрос/ответ к отчёту
// @Tags answers
// @Accept x-www-form-urlencoded
// @Param id path int true "ID отчёта"
// @Param question formData string true "Вопрос"
// @Param response formData string true "Ответ"
// @Success 302 {string} string "Редирект на отчёт"
// @Router /room_report/{id}/answers [post]
func (h *AnswerHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.service.AddAnswer(r.Context(), id, r.FormValue("question"), r.FormValue("response")); err != nil {
		logger.Log.Error("Не удалось добавить ответ", zap.Int("report_id", id), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/room_report/%d", id), http.StatusFound)
}

// Delete godoc
// @Summary Удалить вопрос/ответ
// @Tags answers
// @Param id path int true "ID ответа"
// @Success 302 {string} string "Редирект обратно"
// @Router /answers/{id}/delete [post]
func (h *AnswerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.service.DeleteAnswer(r.Context(), id); err != nil {
		logger.Log.Error("Не удалось удалить ответ", zap.Int("answer_id", id), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	back := r.Referer()
	if back == "" {
		back = "/room_report"
	}
	http.Redirect(w, r, back, http.StatusFound)
}
