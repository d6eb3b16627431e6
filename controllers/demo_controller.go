package controllers

import (
	"context"
	"net/http"
	"time"

	"mingle_server/services"
)

// DemoController handles demo environment setup
type DemoController struct {
	DemoService *services.DemoService
}

// SeedHandler seeds demo venues and check-ins; a repeat call is a no-op
func (c *DemoController) SeedHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	seeded, err := c.DemoService.SeedDemoData(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	message := "Demo data already present"
	if seeded {
		message = "Demo data seeded"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"seeded": seeded, "message": message})
}
