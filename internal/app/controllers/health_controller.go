package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnihub/internal/app/models/dto"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// HealthController serves liveness and readiness probes
type HealthController struct {
	checks map[string]HealthCheck
}

// NewHealthController creates a new HealthController. Each check is run by Healthz.
func NewHealthController(checks map[string]HealthCheck) *HealthController {
	return &HealthController{checks: checks}
}

// Ping answers liveness probes
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse "pong"
// @Router /ping [get]
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, "pong"))
}

// Healthz runs every dependency check and answers 503 if any fails
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse "All dependencies reachable"
// @Failure 503 {object} dto.APIResponse "A dependency is unreachable"
// @Router /healthz [get]
func (c *HealthController) Healthz(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(c.checks))
	for name, check := range c.checks {
		if err := check(checkCtx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	resp := dto.NewSuccessResponse(results, "All dependencies reachable")
	if status != http.StatusOK {
		resp.Success = false
		resp.Message = "A dependency is unreachable"
	}
	ctx.JSON(status, resp)
}
