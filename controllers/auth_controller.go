package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/bloodify/bloodify-server/config"
	utils "github.com/bloodify/bloodify-server/utils"
)

// IssueToken signs a bearer credential for the supplied email. Valid
// for five hours.
func IssueToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		token, err := utils.GenerateToken(input.Email, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
