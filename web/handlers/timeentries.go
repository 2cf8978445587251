package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fichaje.app/fichaje/core/models"
	"fichaje.app/fichaje/shifts"
	"fichaje.app/fichaje/store"
	"fichaje.app/fichaje/web/common"
)

type TimeEntryDTO struct {
	ID         string                `json:"id"`
	EmployeeID string                `json:"employeeId"`
	StartTime  common.LocalDateTime  `json:"start_time"`
	EndTime    *common.LocalDateTime `json:"end_time"`
	Source     string                `json:"source"`
}

func toTimeEntryDTO(e models.TimeEntry) TimeEntryDTO {
	return TimeEntryDTO{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		StartTime:  common.NewLocalDateTime(e.StartTime),
		EndTime:    common.LocalDateTimePtr(e.EndTime),
		Source:     e.Source,
	}
}

func (h *Handler) ListTimeEntries(c *gin.Context) {
	entries, err := h.Store.ListTimeEntries(c.Request.Context(), h.Cfg.CompanyID)
	if err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	dtos := make([]TimeEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toTimeEntryDTO(e)
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dtos))
}

type TimeEntryCreateDTO struct {
	EmployeeID string                `json:"employeeId" binding:"required"`
	StartTime  *common.LocalDateTime `json:"start_time" binding:"required"`
	EndTime    *common.LocalDateTime `json:"end_time" binding:"required"`
}

// CreateTimeEntry is the admin "add past shift" flow. Manual creation always
// produces a closed entry; an open one can only come from the kiosk.
func (h *Handler) CreateTimeEntry(c *gin.Context) {
	var body TimeEntryCreateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	ctx := c.Request.Context()
	start := body.StartTime.TimePtr()
	end := body.EndTime.TimePtr()

	if err := shifts.ValidateAddShift(body.EmployeeID, start, end, time.Now(), h.Cfg.Rules.MaxShiftDuration()); err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	if _, err := h.Store.GetEmployee(ctx, body.EmployeeID); err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	entry := models.TimeEntry{
		EmployeeID: body.EmployeeID,
		CompanyID:  h.Cfg.CompanyID,
		StartTime:  *start,
		EndTime:    end,
		Source:     models.SourceManual,
	}
	if err := h.Store.CreateTimeEntry(ctx, &entry); err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(toTimeEntryDTO(entry)))
}

type TimeEntryUpdateDTO struct {
	StartTime *common.LocalDateTime `json:"start_time,omitempty"`
	EndTime   *common.LocalDateTime `json:"end_time,omitempty"`
}

// UpdateTimeEntry covers both correction flows. An open entry takes the
// manual-exit rules (only the end may be supplied, bounded by the entry and
// the maximum duration); a closed one takes the edit rules on both fields.
// Validation runs before the store is touched, and both fields land in one
// update.
func (h *Handler) UpdateTimeEntry(c *gin.Context) {
	id := c.Param("id")

	var body TimeEntryUpdateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	ctx := c.Request.Context()
	current, err := h.Store.GetTimeEntry(ctx, id)
	if err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	now := time.Now()
	max := h.Cfg.Rules.MaxShiftDuration()
	newStart := body.StartTime.TimePtr()
	newEnd := body.EndTime.TimePtr()

	if current.IsOpen() {
		if newStart != nil {
			err = shifts.NewValidationError("close the shift before editing its start")
			c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
			return
		}
		err = shifts.ValidateManualExit(newEnd, current.StartTime, now, max)
	} else {
		start := current.StartTime
		if newStart != nil {
			start = *newStart
		}
		end := current.EndTime
		if newEnd != nil {
			end = newEnd
		}
		err = shifts.ValidateEditShift(&start, end, now, max)
	}
	if err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.Store.UpdateTimeEntry(ctx, id, store.TimeEntryUpdate{
		StartTime: newStart,
		EndTime:   newEnd,
		Source:    models.SourceManualEdit,
	})
	if err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toTimeEntryDTO(*updated)))
}

func (h *Handler) DeleteTimeEntry(c *gin.Context) {
	id := c.Param("id")

	if err := h.Store.DeleteTimeEntry(c.Request.Context(), id); err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewMessageResponse("time entry deleted", nil))
}
