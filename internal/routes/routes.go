package routes

import (
	"net/http"
	"shiftreport/internal/handlers"
	"shiftreport/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	sessionSecret string,
	qrDir string,
	authHandler *handlers.AuthHandler,
	shiftHandler *handlers.ShiftHandler,
	roomReportHandler *handlers.RoomReportHandler,
	answerHandler *handlers.AnswerHandler,
	userHandler *handlers.UserHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Session(sessionSecret))

	// --- Публичные маршруты ---
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	}).Methods("GET")

	router.HandleFunc("/login", authHandler.LoginForm).Methods("GET")
	router.HandleFunc("/login", authHandler.Login).Methods("POST")
	router.HandleFunc("/admin/login", authHandler.AdminLoginForm).Methods("GET")
	router.HandleFunc("/admin/login", authHandler.AdminLogin).Methods("POST")
	router.HandleFunc("/logout", authHandler.Logout).Methods("GET")
	router.HandleFunc("/qr_login", shiftHandler.QRLogin).Methods("GET")
	router.HandleFunc("/healthz", authHandler.Healthz).Methods("GET")

	// Кэш QR-картинок как статика
	router.PathPrefix("/qrcodes/").Handler(
		http.StripPrefix("/qrcodes/", http.FileServer(http.Dir(qrDir))),
	)

	// --- Требуют входа ---
	protected := router.PathPrefix("/room_report").Subrouter()
	protected.Use(middleware.RequireLogin)
	protected.HandleFunc("", roomReportHandler.Index).Methods("GET")
	protected.HandleFunc("", roomReportHandler.Create).Methods("POST")
	protected.HandleFunc("/new", roomReportHandler.NewForm).Methods("GET")
	protected.HandleFunc("/{id:[0-9]+}", roomReportHandler.Show).Methods("GET")
	protected.HandleFunc("/{id:[0-9]+}", roomReportHandler.Update).Methods("POST")
	protected.HandleFunc("/{id:[0-9]+}/edit", roomReportHandler.EditForm).Methods("GET")
	protected.HandleFunc("/{id:[0-9]+}/delete", roomReportHandler.Delete).Methods("POST")
	protected.HandleFunc("/{id:[0-9]+}/answers", answerHandler.Create).Methods("POST")

	answers := router.PathPrefix("/answers").Subrouter()
	answers.Use(middleware.RequireLogin)
	answers.HandleFunc("/{id:[0-9]+}/delete", answerHandler.Delete).Methods("POST")

	// --- Только администратор ---
	admin := router.PathPrefix("/shift").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("", shiftHandler.Shift).Methods("GET")

	users := router.PathPrefix("/users").Subrouter()
	users.Use(middleware.RequireAdmin)
	users.HandleFunc("", userHandler.Index).Methods("GET")
	users.HandleFunc("", userHandler.Create).Methods("POST")
	users.HandleFunc("/new", userHandler.NewForm).Methods("GET")
	users.HandleFunc("/{id:[0-9]+}", userHandler.Show).Methods("GET")
	users.HandleFunc("/{id:[0-9]+}", userHandler.Update).Methods("POST")
	users.HandleFunc("/{id:[0-9]+}/edit", userHandler.EditForm).Methods("GET")
	users.HandleFunc("/{id:[0-9]+}/delete", userHandler.Delete).Methods("POST")
}
