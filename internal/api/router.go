package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/promosynch/promosynch-api/internal/api/handler"
	"github.com/promosynch/promosynch-api/internal/api/middleware"
	"github.com/promosynch/promosynch-api/internal/core/domain"
	"github.com/promosynch/promosynch-api/internal/core/ports"
	"github.com/promosynch/promosynch-api/internal/core/service"
	mongorepo "github.com/promosynch/promosynch-api/internal/infrastructure/db/mongo"
	redisdedup "github.com/promosynch/promosynch-api/internal/infrastructure/db/redis"
)

// Dependencies carries the process-wide collaborators the router wires into
// handlers. All fields are read-only after startup.
type Dependencies struct {
	Mongo       *mongo.Database
	Redis       *redis.Client
	Media       ports.MediaStore
	Mailer      ports.Mailer
	Google      ports.IdentityProvider
	JWTSecret   string
	FrontendURL string
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("promosynch"))

	// --- Dependencies ---
	promoterRepo := mongorepo.NewPromoterRepository(deps.Mongo)
	happeningRepo := mongorepo.NewHappeningRepository(deps.Mongo)
	dedup := redisdedup.NewRegistrationDedup(deps.Redis)

	authService := service.NewAuthService(promoterRepo, deps.Media, deps.JWTSecret, 0)
	federation := service.NewFederationService(promoterRepo, deps.Log)
	promoterService := service.NewPromoterService(promoterRepo, deps.Log)
	happeningService := service.NewHappeningService(happeningRepo, dedup, deps.Mailer, deps.Log)

	authHandler := handler.NewAuthHandler(authService, federation, deps.Google, deps.FrontendURL, deps.Log)
	promoterHandler := handler.NewPromoterHandler(promoterService, deps.Media)
	happeningHandler := handler.NewHappeningHandler(happeningService, deps.Media)

	gate := middleware.Auth(authService, promoterRepo)
	promoterOnly := middleware.RequireRole(domain.RolePromoter)

	// --- Promoter routes ---
	promoters := e.Group("/promoters")
	promoters.POST("/session", authHandler.Login)
	promoters.POST("/register", authHandler.Register)
	promoters.GET("/oauth-google", authHandler.OAuthInitiate)
	promoters.GET("/oauth-callback", authHandler.OAuthCallback)
	promoters.PATCH("/:id/credentials", authHandler.UpdateCredentials, gate)
	promoters.GET("/:id", promoterHandler.GetByID, gate)
	promoters.PUT("/:id/update", promoterHandler.UpdateProfile, gate)
	promoters.PATCH("/:id/profpic", promoterHandler.UpdateAvatar, gate)
	promoters.DELETE("/:id", promoterHandler.Delete, gate)

	// --- Happening routes ---
	events := e.Group("/events")
	events.POST("/create", happeningHandler.Create, gate, promoterOnly)
	events.GET("", happeningHandler.ListAll, gate)
	events.GET("/promoter/:promoter", happeningHandler.ListByPromoter, gate)
	events.GET("/clients/:promoterId", happeningHandler.ListAttendees, gate)
	events.GET("/:id", happeningHandler.GetByID)
	events.PUT("/:id", happeningHandler.RegisterAttendee) // public registration form
	events.PUT("/:id/update", happeningHandler.Update, gate)
	events.PATCH("/:id/ucover", happeningHandler.UpdateCover, gate)
	events.DELETE("/:id", happeningHandler.Delete, gate)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler(
		handler.MongoProbe(deps.Mongo),
		handler.RedisProbe(deps.Redis),
	)

	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
