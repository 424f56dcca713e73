package main // Entry point package

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/expohall/stall-reservation-portal/internal/client"
	"github.com/expohall/stall-reservation-portal/internal/config"
	"github.com/expohall/stall-reservation-portal/internal/handler"
	"github.com/expohall/stall-reservation-portal/internal/queue"
	"github.com/expohall/stall-reservation-portal/internal/router"
	"github.com/expohall/stall-reservation-portal/internal/search"
	"github.com/expohall/stall-reservation-portal/internal/session"
	"github.com/expohall/stall-reservation-portal/internal/workflow"
)

func main() {
	cfg := config.Load() // Load environment config

	rdb := config.NewRedisClient() // nil when Redis is unreachable; store falls back to memory
	store := session.NewStore(rdb, cfg.SessionTTL)

	// All three service clients read the caller's session from the
	// request context, so one source serves every request.
	src := session.ContextSource{}
	auth := client.NewAuthClient(cfg.AuthBaseURL, src, cfg.RequestTimeout)
	stalls := client.NewStallClient(cfg.StallBaseURL, src, cfg.RequestTimeout)
	reservations := client.NewReservationClient(cfg.ReservationBaseURL, src, cfg.RequestTimeout)

	searcher := search.New(stalls)
	notify := workflow.QueueNotifier{}

	authHandler := handler.NewAuthHandler(auth, store)
	stallHandler := handler.NewStallHandler(stalls, reservations, searcher)
	reservationHandler := handler.NewReservationHandler(stalls, reservations, notify)
	dashboardHandler := handler.NewDashboardHandler(auth, stalls, reservations)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, store)
	router.RegisterPublic(e, stallHandler)
	router.RegisterStalls(e, stallHandler, store)
	router.RegisterReservations(e, reservationHandler, dashboardHandler, store)

	// Mirror confirmed reservation events into the audit log for the
	// duration of the process.
	go queue.StartReservationConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
