package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/commons"
)

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// RegisterRoutes mounts /health without auth; authMiddleware is ignored.
func (c *HealthController) RegisterRoutes(mux *http.ServeMux, _ func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /health", c.health)
}

func (c *HealthController) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, commons.SuccessResponse("service is healthy", HealthResponse{
		Status: "UP",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}))
}
