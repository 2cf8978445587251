package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fichaje.app/fichaje/core/models"
	"fichaje.app/fichaje/store"
	"fichaje.app/fichaje/web/common"
)

type EmployeeDTO struct {
	ID         string   `json:"id"`
	FullName   string   `json:"fullName"`
	HourlyRate *float64 `json:"hourlyRate"`
	IsActive   bool     `json:"isActive"`
}

func toEmployeeDTO(e models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:         e.ID,
		FullName:   e.FullName,
		HourlyRate: e.HourlyRate,
		IsActive:   e.IsActive,
	}
}

func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.Store.ListEmployees(c.Request.Context(), h.Cfg.CompanyID)
	if err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dtos))
}

type EmployeeCreateDTO struct {
	FullName   string   `json:"fullName" binding:"required"`
	HourlyRate *float64 `json:"hourlyRate" binding:"omitempty,gte=0"`
}

func (h *Handler) CreateEmployee(c *gin.Context) {
	var body EmployeeCreateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	emp := models.Employee{
		CompanyID:  h.Cfg.CompanyID,
		FullName:   body.FullName,
		HourlyRate: body.HourlyRate,
	}
	if err := h.Store.CreateEmployee(c.Request.Context(), &emp); err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(toEmployeeDTO(emp)))
}

type EmployeeUpdateDTO struct {
	FullName   *string  `json:"fullName,omitempty"`
	HourlyRate *float64 `json:"hourlyRate,omitempty" binding:"omitempty,gte=0"`
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	id := c.Param("id")

	var body EmployeeUpdateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	emp, err := h.Store.UpdateEmployee(c.Request.Context(), id, store.EmployeeUpdate{
		FullName:   body.FullName,
		HourlyRate: body.HourlyRate,
	})
	if err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toEmployeeDTO(*emp)))
}

// DeleteEmployee is a soft delete; history stays intact.
func (h *Handler) DeleteEmployee(c *gin.Context) {
	id := c.Param("id")

	if err := h.Store.DeactivateEmployee(c.Request.Context(), id); err != nil {
		c.JSON(common.StatusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewMessageResponse("employee deactivated", nil))
}
