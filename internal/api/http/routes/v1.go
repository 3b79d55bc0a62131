package routes

import (
	"database/sql"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	authhttp "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/http"
	authmw "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/middleware"
	authrepo "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/repository"
	authservice "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/service"

	callshttp "github.com/jeromemathew2004/rescue-nexus-hub/internal/calls/http"
	callsrepo "github.com/jeromemathew2004/rescue-nexus-hub/internal/calls/repository"
	callsservice "github.com/jeromemathew2004/rescue-nexus-hub/internal/calls/service"

	fundraisershttp "github.com/jeromemathew2004/rescue-nexus-hub/internal/fundraisers/http"
	fundraisersrepo "github.com/jeromemathew2004/rescue-nexus-hub/internal/fundraisers/repository"
	fundraisersservice "github.com/jeromemathew2004/rescue-nexus-hub/internal/fundraisers/service"

	requestshttp "github.com/jeromemathew2004/rescue-nexus-hub/internal/requests/http"
	requestsrepo "github.com/jeromemathew2004/rescue-nexus-hub/internal/requests/repository"
	requestsservice "github.com/jeromemathew2004/rescue-nexus-hub/internal/requests/service"

	resourceshttp "github.com/jeromemathew2004/rescue-nexus-hub/internal/resources/http"
	resourcesrepo "github.com/jeromemathew2004/rescue-nexus-hub/internal/resources/repository"
	resourcesservice "github.com/jeromemathew2004/rescue-nexus-hub/internal/resources/service"

	volunteershttp "github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/http"
	volunteersrepo "github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/repository"
	volunteersservice "github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/service"

	apimw "github.com/jeromemathew2004/rescue-nexus-hub/internal/api/http/middleware"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/reports"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/stats"
)

type V1Deps struct {
	DB         *sql.DB
	Pool       *pgxpool.Pool
	Redis      *redis.Client
	AuthClient *firebaseauth.Client
	StatsTTL   time.Duration
	RateRPS    float64
	RateBurst  int
}

// RegisterV1 mounts all API routes under /api/v1 and returns the stats
// service so the caller can schedule cache warming.
func RegisterV1(r *gin.Engine, dep V1Deps) *stats.Service {
	api := r.Group("/api/v1")

	api.Use(apimw.RequestIDMiddleware())
	if dep.RateRPS > 0 {
		api.Use(apimw.RateLimitMiddleware(dep.RateRPS, dep.RateBurst))
	}

	profileRepo := authrepo.NewProfileRepository(dep.DB)
	api.Use(authmw.Authenticate(dep.AuthClient, profileRepo))

	profileHandler := authhttp.NewHandler(authservice.NewProfileService(profileRepo))
	profileHandler.Register(api.Group("/auth"))

	requestRepo := requestsrepo.NewRequestRepository(dep.DB)
	requestHandler := requestshttp.NewHandler(requestsservice.NewRequestService(requestRepo))
	requestsGroup := api.Group("/requests")
	requestHandler.Register(requestsGroup)

	volunteerRepo := volunteersrepo.NewVolunteerRepository(dep.DB)
	volunteerHandler := volunteershttp.NewHandler(volunteersservice.NewVolunteerService(volunteerRepo))
	volunteerHandler.Register(api.Group("/volunteers"))

	callRepo := callsrepo.NewCallRepository(dep.DB)
	callHandler := callshttp.NewHandler(callsservice.NewCallService(callRepo, volunteerRepo))
	callHandler.Register(api.Group("/calls"), api.Group("/applications"))

	resourceRepo := resourcesrepo.NewResourceRepository(dep.DB)
	resourceHandler := resourceshttp.NewHandler(resourcesservice.NewResourceService(resourceRepo))
	resourceHandler.Register(api.Group("/resources"))
	resourceHandler.RegisterRequestAllocations(requestsGroup)

	fundraiserRepo := fundraisersrepo.NewFundraiserRepository(dep.DB)
	fundraiserHandler := fundraisershttp.NewHandler(fundraisersservice.NewFundraiserService(fundraiserRepo))
	fundraiserHandler.Register(api.Group("/fundraisers"), api.Group("/donations"))

	reportHandler := reports.NewHandler(reports.NewRepo(dep.DB))
	reportHandler.Register(requestsGroup)

	var statsCache *stats.Cache
	if dep.Redis != nil {
		statsCache = stats.NewCache(dep.Redis, dep.StatsTTL)
	}
	statsService := stats.NewService(stats.NewRepo(dep.Pool), statsCache)
	statsHandler := stats.NewHandler(statsService)
	statsHandler.Register(api.Group("/admin/stats"))

	return statsService
}
