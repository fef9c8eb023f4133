package server

import (
	"time"

	"Backend-Feedback/src/config"
	"Backend-Feedback/src/controllers"
	"Backend-Feedback/src/jobs"
	"Backend-Feedback/src/middleware"
	"Backend-Feedback/src/routes"
	"Backend-Feedback/src/services/accounts"
	"Backend-Feedback/src/services/dashboard"
	"Backend-Feedback/src/services/forms"
	"Backend-Feedback/src/services/notifications"
	"Backend-Feedback/src/services/responses"
	"Backend-Feedback/src/utils"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Store is everything the services persist through; inmem.DB and mongostore.Store implement it.
type Store interface {
	accounts.Store
	forms.Store
	responses.Store
	dashboard.Store
	jobs.Store
}

type Options struct {
	Redis  *redis.Client
	Asynq  *asynq.Client
	Mailer notifications.MailSender
	// Now overrides the clock of the form and response services.
	Now func() time.Time
	// Quiet disables the access log.
	Quiet bool
}

type Server struct {
	App      *fiber.App
	Accounts *accounts.Service
	Forms    *forms.Service
	Jobs     *jobs.Handlers
}

// New wires services, middleware and routes on top of store.
func New(cfg *config.Config, store Store, opts Options) *Server {
	accountSvc := accounts.NewService(store)
	dispatcher := jobs.NewDispatcher(opts.Asynq)
	formSvc := forms.NewService(store, store, dispatcher)
	responseSvc := responses.NewService(store, cfg.Location)
	dashboardSvc := dashboard.NewService(store)
	if opts.Now != nil {
		formSvc.WithClock(opts.Now)
		responseSvc.WithClock(opts.Now)
	}

	jwtManager := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	blacklist := utils.NewTokenBlacklist(opts.Redis)

	app := fiber.New(fiber.Config{
		AppName:      "Backend-Feedback",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: utils.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID)
	if !opts.Quiet {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestId} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowCredentials: cfg.AllowedOrigins != "*", // must be false with "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app, &routes.Handlers{
		Auth:       middleware.NewAuth(jwtManager, blacklist, store),
		AuthC:      controllers.NewAuthController(accountSvc, jwtManager, blacklist, cfg.CookieSecure),
		Users:      controllers.NewUserController(accountSvc),
		Forms:      controllers.NewFormController(formSvc, cfg.AppBaseURL),
		Responses:  controllers.NewResponseController(responseSvc),
		Dashboard:  controllers.NewDashboardController(dashboardSvc),
		LoginLimit: cfg.LoginRateLimit,
	})

	return &Server{
		App:      app,
		Accounts: accountSvc,
		Forms:    formSvc,
		Jobs:     jobs.NewHandlers(store, opts.Mailer, cfg.AppBaseURL),
	}
}
