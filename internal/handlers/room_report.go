package handlers

import (
	"fmt"
	"net/http"
	"shiftreport/internal/logger"
	"shiftreport/internal/models"
	"shiftreport/internal/services"
	helpers "shiftreport/internal/utils/helpers"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type RoomReportHandler struct {
	service *services.RoomReportService
}

func NewRoomReportHandler(service *services.RoomReportService) *RoomReportHandler {
	return &RoomReportHandler{service: service}
}

type roomReportListPage struct {
	Reports []*models.RoomReport
}

type roomReportFormPage struct {
	Error string
	ID    int
	Form  *models.RoomReportInput
}

type roomReportShowPage struct {
	Report  *models.RoomReport
	Answers []*models.Answer
}

func roomReportInputFromForm(r *http.Request) *models.RoomReportInput {
	return &models.RoomReportInput{
		DatetimeStamp: r.FormValue("datetime_stamp"),
		Ward:          r.FormValue("ward"),
		Patient:       r.FormValue("patient"),
		NurseOrHCA:    r.FormValue("nurse_or_hca"),
		Mood:          r.FormValue("mood"),
		SleepingAwake: r.FormValue("sleeping_awake"),
	}
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// Index godoc
// @Summary Список отчётов по палатам
// @Tags room_report
// @Produce html
// @Success 200 {string} string "HTML-страница"
// @Router /room_report [get]
func (h *RoomReportHandler) Index(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.List(r.Context())
	if err != nil {
		logger.Log.Error("Не удалось получить отчёты", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	helpers.Render(w, http.StatusOK, "room_report_index.html", roomReportListPage{Reports: reports})
}

// NewForm godoc
// @Summary Форма нового отчёта
// @Tags room_report
// @Produce html
// @Success 200 {string} string "HTML-страница"
// @Router /room_report/new [get]
func (h *RoomReportHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	helpers.Render(w, http.StatusOK, "room_report_new.html", roomReportFormPage{Form: &models.RoomReportInput{}})
}

// Create godoc
// @Summary Создать отчёт по палате
// @Tags room_report
// @Accept x-www-form-urlencoded
// @Produce html
// @Success 302 {string} string "Редирект на созданный отчёт"
// @Failure 422 {string} string "Ошибка валидации"
// @Router /room_report [post]
func (h *RoomReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	input := roomReportInputFromForm(r)
	report, err := h.service.Create(r.Context(), input)
	if err != nil {
		helpers.Render(w, http.StatusUnprocessableEntity, "room_report_new.html", roomReportFormPage{
			Error: err.Error(),
			Form:  input,
		})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/room_report/%d", report.ID), http.StatusFound)
}

// Show godoc
// @Summary Отчёт по палате с ответами
// @Tags room_report
// @Produce html
// @Param id path int true "ID отчёта"
// @Success 200 {string} string "HTML-страница"
// @Failure 404 {string} string "Не найдено"
// @Router /room_report/{id} [get]
func (h *RoomReportHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	report, err := h.service.Get(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	answers, err := h.service.Answers(r.Context(), id)
	if err != nil {
		logger.Log.Error("Не удалось получить ответы", zap.Int("report_id", id), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	helpers.Render(w, http.StatusOK, "room_report_show.html", roomReportShowPage{Report: report, Answers: answers})
}

// EditForm godoc
// @Summary Форма редактирования отчёта
// @Tags room_report
// @Produce html
// @Param id path int true "ID отчёта"
// @Success 200 {string} string "HTML-страница"
// @Failure 404 {string} string "Не найдено"
// @Router /room_report/{id}/edit [get]
func (h *RoomReportHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	report, err := h.service.Get(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	helpers.Render(w, http.StatusOK, "room_report_edit.html", roomReportFormPage{
		ID: report.ID,
		Form: &models.RoomReportInput{
			DatetimeStamp: report.DatetimeStamp.Format("2006-01-02T15:04"),
			Ward:          report.Ward,
			Patient:       report.Patient,
			NurseOrHCA:    report.NurseOrHCA,
			Mood:          report.Mood,
			SleepingAwake: report.SleepingAwake,
		},
	})
}

// Update godoc
// @Summary Обновить отчёт по палате
// @Tags room_report
// @Accept x-www-form-urlencoded
// @Produce html
// @Param id path int true "ID отчёта"
// @Success 302 {string} string "Редирект на отчёт"
// @Failure 422 {string} string "Ошибка валидации"
// @Router /room_report/{id} [post]
func (h *RoomReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	input := roomReportInputFromForm(r)
	if _, err := h.service.Update(r.Context(), id, input); err != nil {
		helpers.Render(w, http.StatusUnprocessableEntity, "room_report_edit.html", roomReportFormPage{
			Error: err.Error(),
			ID:    id,
			Form:  input,
		})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/room_report/%d", id), http.StatusFound)
}

// Delete godoc
// @Summary Удалить отчёт (ответы удаляются каскадом)
// @Tags room_report
// @Param id path int true "ID отчёта"
// @Success 302 {string} string "Редирект на список"
// @Router /room_report/{id}/delete [post]
func (h *RoomReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		logger.Log.Error("Не удалось удалить отчёт", zap.Int("report_id", id), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/room_report", http.StatusFound)
}
