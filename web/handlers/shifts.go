package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fichaje.app/fichaje/shifts"
	"fichaje.app/fichaje/web/common"
)

type ShiftDTO struct {
	ID           string                `json:"id"`
	EmployeeID   string                `json:"employeeId"`
	EmployeeName string                `json:"employeeName"`
	Entry        common.LocalDateTime  `json:"entry"`
	Exit         *common.LocalDateTime `json:"exit"`
	Hours        float64               `json:"hours"`
	IsOpen       bool                  `json:"isOpen"`
	IsAnomalous  bool                  `json:"isAnomalous"`
}

func toShiftDTO(s shifts.Shift) ShiftDTO {
	return ShiftDTO{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		Entry:        common.NewLocalDateTime(s.Entry),
		Exit:         common.LocalDateTimePtr(s.Exit),
		Hours:        s.Duration.Hours(),
		IsOpen:       s.IsOpen,
		IsAnomalous:  s.IsAnomalous,
	}
}

// loadShifts rebuilds the shift projection from the store. Every read goes
// back to the entries so corrections show up immediately.
func (h *Handler) loadShifts(c *gin.Context, now time.Time) ([]shifts.Shift, error) {
	ctx := c.Request.Context()

	entries, err := h.Store.ListTimeEntries(ctx, h.Cfg.CompanyID)
	if err != nil {
		return nil, err
	}
	employees, err := h.Store.ListAllEmployees(ctx, h.Cfg.CompanyID)
	if err != nil {
		return nil, err
	}
	return shifts.FromEntries(entries, shifts.EmployeeNames(employees), h.policy(), now), nil
}

func (h *Handler) ListShifts(c *gin.Context) {
	all, err := h.loadShifts(c, time.Now())
	if err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	dtos := make([]ShiftDTO, len(all))
	for i, s := range all {
		dtos[i] = toShiftDTO(s)
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dtos))
}

type OpenShiftDTO struct {
	ShiftDTO
	LiveDuration string `json:"liveDuration"`
}

// ToOpenShiftDTOs converts published live views for the wire. The kiosk
// board endpoint serves these straight from the poller snapshot.
func ToOpenShiftDTOs(views []shifts.OpenShift) []OpenShiftDTO {
	dtos := make([]OpenShiftDTO, len(views))
	for i, v := range views {
		dtos[i] = OpenShiftDTO{
			ShiftDTO:     toShiftDTO(v.Shift),
			LiveDuration: v.LiveDuration,
		}
	}
	return dtos
}

// ListOpenShifts backs the kiosk board: currently running shifts with their
// elapsed time formatted as HH:MM:SS.
func (h *Handler) ListOpenShifts(c *gin.Context) {
	now := time.Now()
	all, err := h.loadShifts(c, now)
	if err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(ToOpenShiftDTOs(shifts.LiveViews(all, now))))
}
