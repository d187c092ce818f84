package repository

import (
	"context"
	"shiftreport/internal/logger"
	"shiftreport/internal/models"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, nickname, password_hash, is_admin, is_nurse, is_hca, active,
	login_token, login_token_issued_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Nickname,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.IsNurse,
		&u.IsHCA,
		&u.Active,
		&u.LoginToken,
		&u.LoginTokenIssuedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("email", user.Email))
	query := `
	INSERT INTO users (email, nickname, password_hash, is_admin, is_nurse, is_hca, active)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id`
	return r.db.QueryRow(ctx, query,
		user.Email,
		user.Nickname,
		user.PasswordHash,
		user.IsAdmin,
		user.IsNurse,
		user.IsHCA,
		user.Active,
	).Scan(&user.ID)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по email (repo)", zap.String("email", email))
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		logger.Log.Warn("Пользователь по email не найден (repo)", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по ID (repo)", zap.Int("user_id", id))
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		logger.Log.Warn("Пользователь по ID не найден (repo)", zap.Int("user_id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	logger.Log.Debug("Проверка email на уникальность (repo)", zap.String("email", email))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки email (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	logger.Log.Debug("Получение всех пользователей (repo)")
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка получения пользователей (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			logger.Log.Error("Ошибка сканирования пользователя (repo)", zap.Error(err))
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateUserFields(ctx context.Context, id int, input *models.UserInput) error {
	logger.Log.Info("Обновление пользователя (repo)", zap.Int("user_id", id))
	query := `
	UPDATE users
	SET email = $2, nickname = $3, is_admin = $4, is_nurse = $5, is_hca = $6, active = $7, updated_at = now()
	WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		id,
		input.Email,
		input.Nickname,
		input.IsAdmin,
		input.IsNurse,
		input.IsHCA,
		input.Active,
	)
	if err != nil {
		logger.Log.Error("Ошибка обновления пользователя (repo)", zap.Int("user_id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) DeleteUserByID(ctx context.Context, id int) error {
	logger.Log.Info("Удаление пользователя (repo)", zap.Int("user_id", id))
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления пользователя (repo)", zap.Int("user_id", id), zap.Error(err))
	}
	return err
}

// FindActiveAgents возвращает активных сотрудников (не админов) для выдачи QR.
func (r *UserRepository) FindActiveAgents(ctx context.Context) ([]*models.User, error) {
	logger.Log.Debug("Получение активных сотрудников (repo)")
	query := `SELECT ` + userColumns + ` FROM users
	WHERE active = true AND is_admin = false
	ORDER BY nickname, email`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка получения сотрудников (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			logger.Log.Error("Ошибка сканирования пользователя (repo)", zap.Error(err))
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetLoginToken атомарно выставляет токен и время выдачи одним UPDATE по id.
// Прежний токен пользователя при этом перезаписывается. Возвращает
// pgx.ErrNoRows, если пользователя с таким id нет.
func (r *UserRepository) SetLoginToken(ctx context.Context, userID int, token string, issuedAt time.Time) error {
	logger.Log.Debug("Выдача одноразового токена (repo)", zap.Int("user_id", userID))
	query := `
	UPDATE users
	SET login_token = $2, login_token_issued_at = $3, updated_at = now()
	WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, userID, token, issuedAt)
	if err != nil {
		logger.Log.Error("Ошибка выдачи токена (repo)", zap.Int("user_id", userID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ConsumeLoginToken — одна атомарная операция find-and-clear по значению токена.
// Совпадение и сброс происходят в одном UPDATE, поэтому из двух конкурентных
// вызовов с одним токеном ровно один получит строку, второй — pgx.ErrNoRows.
// Токены, выданные не позже issuedAfter, не считаются совпадением (истекли).
func (r *UserRepository) ConsumeLoginToken(ctx context.Context, token string, issuedAfter time.Time) (*models.User, error) {
	query := `
	UPDATE users
	SET login_token = NULL, login_token_issued_at = NULL, updated_at = now()
	WHERE login_token = $1 AND login_token_issued_at > $2
	RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, token, issuedAfter))
	if err != nil {
		return nil, err
	}
	logger.Log.Debug("Одноразовый токен погашен (repo)", zap.Int("user_id", user.ID))
	return user, nil
}
