package handler

import (
	"net/http"

	"github.com/Rrens/careops/internal/api/response"
	"github.com/Rrens/careops/internal/service"
	"github.com/rs/zerolog/log"
)

// RefreshSchema reloads the table capability descriptor
func RefreshSchema(schemaService *service.SchemaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caps, err := schemaService.Refresh(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("schema refresh failed")
			response.ServiceUnavailable(w, "failed to refresh schema capabilities")
			return
		}

		response.OK(w, caps)
	}
}
