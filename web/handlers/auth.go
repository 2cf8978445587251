package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fichaje.app/fichaje/security"
	"fichaje.app/fichaje/web/common"
)

type LoginDTO struct {
	Password string `json:"password" binding:"required"`
}

// Login checks the configured admin password and issues a session token.
func (h *Handler) Login(c *gin.Context) {
	var body LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if !h.passwordMatches(body.Password) {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("incorrect password"))
		return
	}

	token, err := security.CreateIdentityToken(&security.AdminIdentity{
		CompanyID: h.Cfg.CompanyID,
		Name:      "admin",
	}, h.Cfg.SigningSecret, 8*3600)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"token": token}))
}
