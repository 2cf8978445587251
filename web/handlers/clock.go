package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fichaje.app/fichaje/web/common"
)

type ClockDTO struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Force      bool   `json:"force"`
}

// Clock toggles the employee's state from the kiosk. A fresh clock-in stays
// cancelable for a short window; the response says which happened so the
// kiosk can offer the undo button.
func (h *Handler) Clock(c *gin.Context) {
	var body ClockDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	entry, err := h.Clocker.Clock(c.Request.Context(), body.EmployeeID, body.Force)
	if err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"entry":      toTimeEntryDTO(*entry),
		"open":       entry.IsOpen(),
		"cancelable": h.Clocker.Pending(body.EmployeeID),
	}))
}

type ClockCancelDTO struct {
	EmployeeID string `json:"employeeId" binding:"required"`
}

func (h *Handler) CancelClock(c *gin.Context) {
	var body ClockCancelDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if err := h.Clocker.CancelPending(c.Request.Context(), body.EmployeeID); err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewMessageResponse("clock-in cancelled", nil))
}
