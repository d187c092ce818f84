package services

import (
	"context"
	"fmt"
	"shiftreport/internal/logger"
	"shiftreport/internal/models"
	"strings"
	"time"

	"go.uber.org/zap"
)

type RoomReportService struct {
	reports RoomReportRepo
	answers AnswerRepo
}

type RoomReportRepo interface {
	GetAll(ctx context.Context) ([]*models.RoomReport, error)
	GetByID(ctx context.Context, id int) (*models.RoomReport, error)
	Create(ctx context.Context, rr *models.RoomReport) error
	Update(ctx context.Context, rr *models.RoomReport) error
	Delete(ctx context.Context, id int) error
}

type AnswerRepo interface {
	GetForRoomReport(ctx context.Context, roomReportID int) ([]*models.Answer, error)
	Create(ctx context.Context, a *models.Answer) error
	Delete(ctx context.Context, id int) error
}

func NewRoomReportService(reports RoomReportRepo, answers AnswerRepo) *RoomReportService {
	return &RoomReportService{reports: reports, answers: answers}
}

// timeLayouts — форматы, которые присылают формы и datetime-local.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDatetimeStamp(val string) time.Time {
	val = strings.TrimSpace(val)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t
		}
	}
	// Нечитаемое время не валит создание отчёта — берём текущее.
	return time.Now()
}

func normalizeRoomReport(input *models.RoomReportInput) *models.RoomReport {
	return &models.RoomReport{
		DatetimeStamp: parseDatetimeStamp(input.DatetimeStamp),
		Ward:          strings.TrimSpace(input.Ward),
		Patient:       strings.TrimSpace(input.Patient),
		NurseOrHCA:    strings.TrimSpace(input.NurseOrHCA),
		Mood:          strings.TrimSpace(input.Mood),
		SleepingAwake: strings.TrimSpace(input.SleepingAwake),
	}
}

func validateRoomReport(rr *models.RoomReport) error {
	var missing []string
	if rr.Ward == "" {
		missing = append(missing, "ward")
	}
	if rr.Patient == "" {
		missing = append(missing, "patient")
	}
	if rr.NurseOrHCA == "" {
		missing = append(missing, "nurse_or_hca")
	}
	if len(missing) > 0 {
		return fmt.Errorf("не заполнены обязательные поля: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (s *RoomReportService) List(ctx context.Context) ([]*models.RoomReport, error) {
	return s.reports.GetAll(ctx)
}

func (s *RoomReportService) Get(ctx context.Context, id int) (*models.RoomReport, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *RoomReportService) Create(ctx context.Context, input *models.RoomReportInput) (*models.RoomReport, error) {
	rr := normalizeRoomReport(input)
	if err := validateRoomReport(rr); err != nil {
		logger.Log.Warn("Отчёт не прошёл валидацию (service)", zap.Error(err))
		return nil, err
	}
	if err := s.reports.Create(ctx, rr); err != nil {
		return nil, err
	}
	logger.Log.Info("Отчёт по палате создан (service)", zap.Int("report_id", rr.ID))
	return rr, nil
}

func (s *RoomReportService) Update(ctx context.Context, id int, input *models.RoomReportInput) (*models.RoomReport, error) {
	rr := normalizeRoomReport(input)
	if err := validateRoomReport(rr); err != nil {
		logger.Log.Warn("Отчёт не прошёл валидацию (service)", zap.Error(err))
		return nil, err
	}
	rr.ID = id
	if err := s.reports.Update(ctx, rr); err != nil {
		return nil, err
	}
	logger.Log.Info("Отчёт по палате обновлён (service)", zap.Int("report_id", id))
	return rr, nil
}

func (s *RoomReportService) Delete(ctx context.Context, id int) error {
	return s.reports.Delete(ctx, id)
}

func (s *RoomReportService) Answers(ctx context.Context, roomReportID int) ([]*models.Answer, error) {
	return s.answers.GetForRoomReport(ctx, roomReportID)
}

func (s *RoomReportService) AddAnswer(ctx context.Context, roomReportID int, question, response string) error {
	a := &models.Answer{
		RoomReportID: roomReportID,
		Question:     strings.TrimSpace(question),
		Response:     strings.TrimSpace(response),
	}
	return s.answers.Create(ctx, a)
}

func (s *RoomReportService) DeleteAnswer(ctx context.Context, id int) error {
	return s.answers.Delete(ctx, id)
}
