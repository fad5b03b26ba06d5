package handlers

import (
	"github.com/gin-gonic/gin"

	intconfig "hauling-backend/internal/config"
	"hauling-backend/internal/http/middleware"
	"hauling-backend/internal/repositories"
	"hauling-backend/internal/services"
)

// Shared service state. TripService carries per-trip edit locks so it must
// be a single instance; the stateless services are built per request to
// carry the request id into logs.
var (
	tripSvc  *services.TripService
	dupGuard services.DuplicateService
)

// Init wires repositories and services. Must run once before the router
// serves traffic.
func Init(env intconfig.Env) {
	dupGuard = services.DuplicateService{BaseURL: env.DuplicateServiceURL}
	tripSvc = &services.TripService{
		TripsRepo:    repositories.TripsRepository{},
		DropsRepo:    repositories.DropsRepository{},
		SettingsRepo: repositories.SettingsRepository{},
		Guard:        dupGuard,
	}
}

func dropService(c *gin.Context) services.DropService {
	return services.DropService{
		DropsRepo:    repositories.DropsRepository{},
		TripsRepo:    repositories.TripsRepository{},
		SettingsRepo: repositories.SettingsRepository{},
		Guard:        dupGuard,
		RequestID:    middleware.GetRequestID(c),
	}
}

func reportService(c *gin.Context) services.ReportService {
	return services.ReportService{
		TripsRepo:      repositories.TripsRepository{},
		DropsRepo:      repositories.DropsRepository{},
		RollupsRepo:    repositories.RollupsRepository{},
		SubDetailsRepo: repositories.SubDetailsRepository{},
		RequestID:      middleware.GetRequestID(c),
	}
}

func manifestService(c *gin.Context) services.ManifestService {
	return services.ManifestService{
		TripsRepo:    repositories.TripsRepository{},
		DropsRepo:    repositories.DropsRepository{},
		SettingsRepo: repositories.SettingsRepository{},
		RequestID:    middleware.GetRequestID(c),
	}
}

func duplicateService(c *gin.Context) services.DuplicateService {
	s := dupGuard
	s.RequestID = middleware.GetRequestID(c)
	return s
}
