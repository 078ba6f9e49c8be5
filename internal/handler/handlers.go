package handler

import (
	"github.com/MKhiriev/guardian-alarm/internal/config"
	"github.com/MKhiriev/guardian-alarm/internal/handler/http"
	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/service"
)

// Handlers bundles the transport handlers of the server. Only HTTP is served
// today; the struct stays so a second transport can be added without touching
// the call sites.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
