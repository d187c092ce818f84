package repository

import (
	"context"
	"shiftreport/internal/logger"
	"shiftreport/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type AnswerRepository struct {
	db *pgxpool.Pool
}

func NewAnswerRepository(db *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// GetForRoomReport — ответы отчёта в порядке добавления.
func (r *AnswerRepository) GetForRoomReport(ctx context.Context, roomReportID int) ([]*models.Answer, error) {
	query := `
	SELECT id, room_report_id, question, response, created_at
	FROM answers
	WHERE room_report_id = $1
	ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, roomReportID)
	if err != nil {
		logger.Log.Error("Ошибка получения ответов (repo)", zap.Int("report_id", roomReportID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var answers []*models.Answer
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.RoomReportID, &a.Question, &a.Response, &a.CreatedAt); err != nil {
			logger.Log.Error("Ошибка сканирования ответа (repo)", zap.Error(err))
			return nil, err
		}
		answers = append(answers, &a)
	}
	return answers, rows.Err()
}

func (r *AnswerRepository) Create(ctx context.Context, a *models.Answer) error {
	logger.Log.Info("Добавление ответа (repo)", zap.Int("report_id", a.RoomReportID))
	query := `
	INSERT INTO answers (room_report_id, question, response)
	VALUES ($1, $2, $3)
	RETURNING id, created_at`
	return r.db.QueryRow(ctx, query, a.RoomReportID, a.Question, a.Response).Scan(&a.ID, &a.CreatedAt)
}

func (r *AnswerRepository) Delete(ctx context.Context, id int) error {
	logger.Log.Info("Удаление ответа (repo)", zap.Int("answer_id", id))
	_, err := r.db.Exec(ctx, `DELETE FROM answers WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления ответа (repo)", zap.Error(err))
	}
	return err
}
