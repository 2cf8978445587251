package main

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"fichaje.app/fichaje/clock"
	"fichaje.app/fichaje/config"
	"fichaje.app/fichaje/core"
	"fichaje.app/fichaje/poll"
	"fichaje.app/fichaje/shifts"
	"fichaje.app/fichaje/store"
	"fichaje.app/fichaje/web/common"
	"fichaje.app/fichaje/web/handlers"
	"fichaje.app/fichaje/web/middlewares"
)

// liveBoard is the snapshot behind the kiosk board. The refresher rebuilds
// the shift list from the store, the ticker reformats the open views against
// the wall clock, and GET /live serves whatever was published last without
// touching the database.
type liveBoard struct {
	mu     sync.RWMutex
	shifts []shifts.Shift
	views  []shifts.OpenShift
}

func (b *liveBoard) setShifts(all []shifts.Shift) {
	b.mu.Lock()
	b.shifts = all
	b.mu.Unlock()
}

func (b *liveBoard) getShifts() []shifts.Shift {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.shifts
}

func (b *liveBoard) setViews(views []shifts.OpenShift) {
	b.mu.Lock()
	b.views = views
	b.mu.Unlock()
}

func (b *liveBoard) getViews() []shifts.OpenShift {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.views
}

func main() {
	logger := log.New(os.Stderr, "[fichaje] ", log.LstdFlags)

	cfg, err := config.Load(os.Getenv("FICHAJE_CONFIG"))
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	secret, err := base64.StdEncoding.DecodeString(cfg.SigningSecret)
	if err != nil {
		logger.Fatalf("decode signing secret: %v", err)
	}

	dm, err := core.New(cfg.DSN, cfg.MaxConnections)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer dm.Close()

	st := store.New(dm)
	guard := shifts.ClockGuard{
		MaxShiftDuration:     cfg.Rules.MaxShiftDuration(),
		MinTimeBetweenShifts: cfg.Rules.MinTimeBetweenShifts(),
	}
	clocker := clock.New(st, guard, cfg.CompanyID, cfg.Rules.CancelWindow())
	h := &handlers.Handler{Store: st, Clocker: clocker, Cfg: cfg}

	board := &liveBoard{}
	policy := shifts.Policy{MaxShiftDuration: cfg.Rules.MaxShiftDuration()}

	refresher := poll.NewRefresher(cfg.Rules.RefreshInterval(), func(ctx context.Context) error {
		entries, err := st.ListTimeEntries(ctx, cfg.CompanyID)
		if err != nil {
			return err
		}
		employees, err := st.ListAllEmployees(ctx, cfg.CompanyID)
		if err != nil {
			return err
		}
		board.setShifts(shifts.FromEntries(entries, shifts.EmployeeNames(employees), policy, time.Now()))
		return nil
	}, logger)

	ticker := poll.NewLiveTicker(cfg.Rules.TickInterval(), board.getShifts, board.setViews)

	ctx := context.Background()
	refresher.Start(ctx)
	defer refresher.Stop()
	ticker.Start(ctx)
	defer ticker.Stop()

	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := r.Group("/api/v1")
	api.POST("/login", h.Login)
	api.POST("/clock", h.Clock)
	api.POST("/clock/cancel", h.CancelClock)
	api.GET("/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, common.NewSuccessResponse(handlers.ToOpenShiftDTOs(board.getViews())))
	})

	protected := api.Group("")
	protected.Use(middlewares.Authentication(secret))
	{
		protected.GET("/employees", h.ListEmployees)
		protected.POST("/employees", h.CreateEmployee)
		protected.PUT("/employees/:id", h.UpdateEmployee)
		protected.DELETE("/employees/:id", h.DeleteEmployee)

		protected.GET("/time-entries", h.ListTimeEntries)
		protected.POST("/time-entries", h.CreateTimeEntry)
		protected.PUT("/time-entries/:id", h.UpdateTimeEntry)
		protected.DELETE("/time-entries/:id", h.DeleteTimeEntry)

		protected.GET("/shifts", h.ListShifts)
		protected.GET("/shifts/open", h.ListOpenShifts)

		protected.GET("/summary", h.WeeklySummary)
		protected.GET("/summary/export", h.ExportWeeklySummary)
	}

	if err := r.Run(cfg.Listen); err != nil {
		logger.Fatalf("server: %v", err)
	}
}
