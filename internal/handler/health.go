package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(c *gin.Context) {
	database := "Connected"
	if h.db == nil || h.db.PingContext(c.Request.Context()) != nil {
		database = "Disconnected"
	}

	OK(c, gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
		"database":  database,
	}, "ApnaDr API is running")
}
