package app

import (
	"context"
	"shiftreport/internal/config"
	"shiftreport/internal/db"
	"shiftreport/internal/handlers"
	"shiftreport/internal/repository"
	"shiftreport/internal/routes"
	"shiftreport/internal/services"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	if err := db.RunMigrations(context.Background(), cfg); err != nil {
		return nil, err
	}

	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	roomReportRepo := repository.NewRoomReportRepository(conn)
	answerRepo := repository.NewAnswerRepository(conn)

	// Сервисы
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewLoginTokenService(userRepo, cfg.GetQRTokenTTL())
	roomReportService := services.NewRoomReportService(roomReportRepo, answerRepo)
	qrService, err := services.NewQRCodeService(authService, tokenService, cfg.AppBaseURL, cfg.QRDir)
	if err != nil {
		return nil, err
	}

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService, cfg)
	shiftHandler := handlers.NewShiftHandler(qrService, tokenService, authHandler)
	roomReportHandler := handlers.NewRoomReportHandler(roomReportService)
	answerHandler := handlers.NewAnswerHandler(roomReportService)
	userHandler := handlers.NewUserHandler(authService)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, cfg.SessionSecret, cfg.QRDir, authHandler, shiftHandler, roomReportHandler, answerHandler, userHandler)

	return router, nil
}
