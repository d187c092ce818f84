// Сидер базы: создаёт администратора и тестовую медсестру, если их ещё нет.
package main

import (
	"context"
	"os"
	"shiftreport/internal/config"
	"shiftreport/internal/db"
	"shiftreport/internal/logger"
	"shiftreport/internal/models"
	"shiftreport/internal/repository"
	"shiftreport/internal/services"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	logger.InitLogger()
	defer logger.Log.Sync()

	if err != nil {
		logger.Log.Fatal("Ошибка загрузки конфига", zap.Error(err))
	}

	ctx := context.Background()
	if err := db.RunMigrations(ctx, cfg); err != nil {
		logger.Log.Fatal("Ошибка миграций", zap.Error(err))
	}

	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		logger.Log.Fatal("Ошибка подключения к БД", zap.Error(err))
	}
	defer conn.Close()

	authService := services.NewAuthService(repository.NewUserRepository(conn))

	def := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}

	seed := []struct {
		user     *models.User
		password string
	}{
		{
			user: &models.User{
				Email:    def(os.Getenv("SEED_ADMIN_EMAIL"), "admin@example.com"),
				Nickname: "Admin",
				IsAdmin:  true,
				Active:   true,
			},
			password: def(os.Getenv("SEED_ADMIN_PASSWORD"), "ChangeMe123!"),
		},
		{
			user: &models.User{
				Email:    "nurse@example.com",
				Nickname: "Nurse",
				IsNurse:  true,
				Active:   true,
			},
			password: "Secret123!",
		},
	}

	for _, s := range seed {
		if err := authService.RegisterUser(ctx, s.user, s.password); err != nil {
			logger.Log.Warn("Пользователь не создан", zap.String("email", s.user.Email), zap.Error(err))
			continue
		}
		logger.Log.Info("Пользователь создан", zap.String("email", s.user.Email), zap.Int("user_id", s.user.ID))
	}
}
