package handlers

import (
	"crypto/subtle"
	"time"

	"fichaje.app/fichaje/clock"
	"fichaje.app/fichaje/config"
	"fichaje.app/fichaje/shifts"
	"fichaje.app/fichaje/store"
)

// Handler bundles what the endpoint groups share: the store, the kiosk
// clocker, and the configured rules.
type Handler struct {
	Store   *store.Store
	Clocker *clock.Clocker
	Cfg     *config.Config
}

func (h *Handler) policy() shifts.Policy {
	return shifts.Policy{MaxShiftDuration: h.Cfg.Rules.MaxShiftDuration()}
}

func (h *Handler) weekRules() shifts.WeekRules {
	return shifts.WeekRules{
		StartDay:  time.Weekday(h.Cfg.Rules.WeekStartDay),
		StartHour: h.Cfg.Rules.WeekStartHour,
	}
}

func (h *Handler) passwordMatches(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(h.Cfg.AdminPassword)) == 1
}
