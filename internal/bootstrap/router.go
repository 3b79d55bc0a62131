package bootstrap

import (
	"database/sql"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/jeromemathew2004/rescue-nexus-hub/internal/api/http"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/api/http/routes"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/stats"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *sql.DB
	Pool        *pgxpool.Pool
	Redis       *redis.Client
	AuthClient  *firebaseauth.Client
	StatsTTL    time.Duration
	RateRPS     float64
	RateBurst   int
}

func BuildRouter(dep RouterDeps) (*gin.Engine, *stats.Service) {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id", "X-User-Id", "X-User-Name"},
		ExposeHeaders:    []string{"X-Request-Id"},
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Pool, dep.Redis)
	healthHandler.RegisterRoutes(r)

	statsService := routes.RegisterV1(r, routes.V1Deps{
		DB:         dep.DB,
		Pool:       dep.Pool,
		Redis:      dep.Redis,
		AuthClient: dep.AuthClient,
		StatsTTL:   dep.StatsTTL,
		RateRPS:    dep.RateRPS,
		RateBurst:  dep.RateBurst,
	})

	return r, statsService
}
