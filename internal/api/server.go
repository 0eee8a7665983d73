package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/skilledwork/worker_service/config"
	"github.com/skilledwork/worker_service/infra/queue"
	"github.com/skilledwork/worker_service/internal/api/rest/handlers"
	"github.com/skilledwork/worker_service/internal/api/rest/middleware"
	"github.com/skilledwork/worker_service/internal/domain"
	"github.com/skilledwork/worker_service/internal/helper"
	"github.com/skilledwork/worker_service/internal/ratelimit"
	"github.com/skilledwork/worker_service/internal/repository"
	"github.com/skilledwork/worker_service/internal/services"
	"github.com/skilledwork/worker_service/pkg/cloudinary"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260831

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.WorkerProfile{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	rdb := ratelimit.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	cooldown := ratelimit.NewRedisCooldown(rdb, ratelimit.ResendWindow)

	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	workerRepo := repository.NewWorkerRepository(db)

	// ---------- Services ----------
	workerSvc := services.NewWorkerService(workerRepo, userRepo, up)
	userSvc := services.NewUserService(userRepo, workerSvc, kafkaProducer, cooldown, authHelper)

	// ---------- Handlers ----------
	authMw := middleware.AuthMiddleware(authHelper)

	api := app.Group("/api")
	handlers.NewAuthHandler(userSvc, authHelper).SetupRoutes(api, authMw)
	handlers.NewWorkerHandler(workerSvc, authHelper).SetupRoutes(api, authMw)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
