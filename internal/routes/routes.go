package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/config"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/handlers"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/repository"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/schedule"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/services"
	calws "github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	clientRepo := repository.NewClientRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	hub := calws.NewHub()
	go hub.Run()

	clientService := services.NewClientService(
		db,
		clientRepo,
		sessionRepo,
		paymentRepo,
		hub,
		cfg.OverdueAfterDays,
		cfg.ReadyThreshold,
	)
	sessionService := services.NewSessionService(
		db,
		sessionRepo,
		clientRepo,
		hub,
		cfg.MinSessionMinutes,
		cfg.DefaultSessionMinutes,
		cfg.RejectOverlaps,
		cfg.OverdueAfterDays,
		cfg.ReadyThreshold,
	)
	calendarService := services.NewCalendarService(sessionRepo, sessionService, cfg.SnapMinutes, cfg.MinSessionMinutes)
	plannerService := services.NewPlannerService(clientRepo, sessionService, schedule.Preferences{
		WorkingDays:     cfg.WorkingDays,
		WorkingStart:    cfg.WorkingHoursStart,
		WorkingEnd:      cfg.WorkingHoursEnd,
		SessionDuration: cfg.DefaultSessionMinutes,
	})

	clientHandler := handlers.NewClientHandler(clientService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	plannerHandler := handlers.NewPlannerHandler(plannerService)

	api := app.Group("/api/v1")

	clients := api.Group("/clients")
	clients.Post("", clientHandler.Register)
	clients.Get("", clientHandler.List)
	clients.Get("/:id", clientHandler.Get)
	clients.Post("/:id/payments", clientHandler.RecordPayment)
	clients.Get("/:id/payments", clientHandler.ListPayments)
	clients.Patch("/:id/notes", clientHandler.UpdateNotes)
	clients.Patch("/:id/status", clientHandler.UpdateStatus)

	sessions := api.Group("/sessions")
	sessions.Post("/propose", sessionHandler.Propose)
	sessions.Post("", sessionHandler.Commit)
	sessions.Get("", sessionHandler.ListByClient)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Patch("/:id", sessionHandler.Edit)
	sessions.Delete("/:id", sessionHandler.Delete)
	sessions.Patch("/:id/schedule", sessionHandler.Reschedule)
	sessions.Patch("/:id/duration", sessionHandler.Resize)
	sessions.Post("/:id/complete", sessionHandler.Complete)
	sessions.Post("/:id/cancel", sessionHandler.Cancel)

	cal := api.Group("/calendar")
	cal.Get("", calendarHandler.Grid)
	cal.Post("/drag-end", calendarHandler.DragEnd)
	cal.Post("/resize-end", calendarHandler.ResizeEnd)

	planner := api.Group("/planner")
	planner.Post("/generate", plannerHandler.Generate)
	planner.Post("/accept", plannerHandler.Accept)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		client := calws.NewClient(hub, conn)
		hub.Register(client)
		go client.WritePump()
		client.ReadPump()
	}))
}
