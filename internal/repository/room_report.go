package repository

import (
	"context"
	"shiftreport/internal/logger"
	"shiftreport/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type RoomReportRepository struct {
	db *pgxpool.Pool
}

func NewRoomReportRepository(db *pgxpool.Pool) *RoomReportRepository {
	return &RoomReportRepository{db: db}
}

const roomReportColumns = `id, datetime_stamp, ward, patient, nurse_or_hca, mood, sleeping_awake, created_at, updated_at`

func scanRoomReport(row pgx.Row) (*models.RoomReport, error) {
	var rr models.RoomReport
	err := row.Scan(
		&rr.ID,
		&rr.DatetimeStamp,
		&rr.Ward,
		&rr.Patient,
		&rr.NurseOrHCA,
		&rr.Mood,
		&rr.SleepingAwake,
		&rr.CreatedAt,
		&rr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

// GetAll — все отчёты, свежие сверху.
func (r *RoomReportRepository) GetAll(ctx context.Context) ([]*models.RoomReport, error) {
	query := `SELECT ` + roomReportColumns + ` FROM room_reports ORDER BY datetime_stamp DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка получения отчётов (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var reports []*models.RoomReport
	for rows.Next() {
		rr, err := scanRoomReport(rows)
		if err != nil {
			logger.Log.Error("Ошибка сканирования отчёта (repo)", zap.Error(err))
			return nil, err
		}
		reports = append(reports, rr)
	}
	return reports, rows.Err()
}

func (r *RoomReportRepository) GetByID(ctx context.Context, id int) (*models.RoomReport, error) {
	query := `SELECT ` + roomReportColumns + ` FROM room_reports WHERE id = $1`
	return scanRoomReport(r.db.QueryRow(ctx, query, id))
}

func (r *RoomReportRepository) Create(ctx context.Context, rr *models.RoomReport) error {
	logger.Log.Info("Создание отчёта по палате (repo)", zap.String("ward", rr.Ward))
	query := `
	INSERT INTO room_reports (datetime_stamp, ward, patient, nurse_or_hca, mood, sleeping_awake)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		rr.DatetimeStamp,
		rr.Ward,
		rr.Patient,
		rr.NurseOrHCA,
		rr.Mood,
		rr.SleepingAwake,
	).Scan(&rr.ID, &rr.CreatedAt, &rr.UpdatedAt)
}

func (r *RoomReportRepository) Update(ctx context.Context, rr *models.RoomReport) error {
	logger.Log.Info("Обновление отчёта по палате (repo)", zap.Int("report_id", rr.ID))
	query := `
	UPDATE room_reports
	SET datetime_stamp = $2, ward = $3, patient = $4, nurse_or_hca = $5, mood = $6, sleeping_awake = $7, updated_at = now()
	WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		rr.ID,
		rr.DatetimeStamp,
		rr.Ward,
		rr.Patient,
		rr.NurseOrHCA,
		rr.Mood,
		rr.SleepingAwake,
	)
	if err != nil {
		logger.Log.Error("Ошибка обновления отчёта (repo)", zap.Int("report_id", rr.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete удаляет отчёт; ответы уходят каскадом (FK ON DELETE CASCADE).
func (r *RoomReportRepository) Delete(ctx context.Context, id int) error {
	logger.Log.Info("Удаление отчёта по палате (repo)", zap.Int("report_id", id))
	_, err := r.db.Exec(ctx, `DELETE FROM room_reports WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления отчёта (repo)", zap.Int("report_id", id), zap.Error(err))
	}
	return err
}
