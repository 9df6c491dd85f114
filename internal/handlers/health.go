package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"fairvalue/backend-go/internal/models"
)

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := []string{}
	missing := []string{}
	depsStatus := map[string]models.DepStatus{}
	if a.upstream != nil {
		if err := a.upstream.Ping(ctx); err != nil {
			missing = append(missing, "quote_source_unreachable")
			depsStatus["quote_source"] = models.DepStatus{Ok: false, Error: err.Error()}
		} else {
			deps = append(deps, "quote_source")
			depsStatus["quote_source"] = models.DepStatus{Ok: true}
		}
	}

	resp := models.HealthResponse{
		Ok:          len(missing) == 0,
		TsISO:       nowISO(),
		Service:     "fairvalue-backend",
		Version:     os.Getenv("SERVICE_VERSION"),
		Deps:        deps,
		DepsStatus:  depsStatus,
		DataMissing: missing,
	}
	writeJSON(w, http.StatusOK, resp)
}
