package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fichaje.app/fichaje/export"
	"fichaje.app/fichaje/shifts"
	"fichaje.app/fichaje/web/common"
)

type WeeklySummaryDTO struct {
	EmployeeID        string     `json:"employeeId"`
	EmployeeName      string     `json:"employeeName"`
	TotalHours        float64    `json:"totalHours"`
	EstimatedPay      float64    `json:"estimatedPay"`
	HasAnomalousShift bool       `json:"hasAnomalousShift"`
	Shifts            []ShiftDTO `json:"shifts"`
}

type SummaryResponseDTO struct {
	WeekStart common.LocalDateTime `json:"weekStart"`
	WeekEnd   common.LocalDateTime `json:"weekEnd"`
	Offset    int                  `json:"offset"`
	Lines     []WeeklySummaryDTO   `json:"lines"`
}

// weekOffset reads the ?week query parameter into a navigator. Zero is the
// current week and only past weeks are reachable; the navigator clamps
// anything in the future.
func weekOffset(c *gin.Context) (*shifts.WeekNavigator, error) {
	raw := c.DefaultQuery("week", "0")
	offset, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid week offset %q", raw)
	}
	return shifts.NewWeekNavigator(offset), nil
}

func (h *Handler) weeklySummary(c *gin.Context) ([]shifts.WeeklySummary, shifts.WeekWindow, int, error) {
	nav, err := weekOffset(c)
	if err != nil {
		return nil, shifts.WeekWindow{}, 0, shifts.NewValidationError("%s", err.Error())
	}

	now := time.Now()
	window := nav.Window(now, h.weekRules())

	all, err := h.loadShifts(c, now)
	if err != nil {
		return nil, shifts.WeekWindow{}, 0, err
	}
	employees, err := h.Store.ListAllEmployees(c.Request.Context(), h.Cfg.CompanyID)
	if err != nil {
		return nil, shifts.WeekWindow{}, 0, err
	}

	return shifts.Summarize(all, employees, window), window, nav.Offset(), nil
}

func (h *Handler) WeeklySummary(c *gin.Context) {
	summaries, window, offset, err := h.weeklySummary(c)
	if err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	lines := make([]WeeklySummaryDTO, len(summaries))
	for i, s := range summaries {
		dto := WeeklySummaryDTO{
			EmployeeID:        s.Employee.ID,
			EmployeeName:      s.Employee.FullName,
			TotalHours:        s.TotalHours,
			EstimatedPay:      s.EstimatedPay,
			HasAnomalousShift: s.HasAnomalousShift,
			Shifts:            make([]ShiftDTO, len(s.Shifts)),
		}
		for j, sh := range s.Shifts {
			dto.Shifts[j] = toShiftDTO(sh)
		}
		lines[i] = dto
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(SummaryResponseDTO{
		WeekStart: common.NewLocalDateTime(window.Start),
		WeekEnd:   common.NewLocalDateTime(window.End),
		Offset:    offset,
		Lines:     lines,
	}))
}

// ExportWeeklySummary streams the same summary as an xlsx workbook.
func (h *Handler) ExportWeeklySummary(c *gin.Context) {
	summaries, window, _, err := h.weeklySummary(c)
	if err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	filename := fmt.Sprintf("resumen-semanal-%s.xlsx", window.Start.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := export.WriteWeeklySummary(c.Writer, summaries, window); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
}
