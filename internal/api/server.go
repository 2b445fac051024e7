// @title User Directory API
// @version 1.0
// @description Relational user directory: users, profiles, roles and permissions.
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description static shared secret

package api

import (
	"log"
	"time"

	"userdirectory/config"
	"userdirectory/infra/queue"
	"userdirectory/internal/api/rest/handlers"
	"userdirectory/internal/domain"
	"userdirectory/internal/interfaces"
	"userdirectory/internal/repository"
	"userdirectory/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()
	RegisterSwagger(app)

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.BaseURL,
		AllowHeaders: "Content-Type, Accept, x-api-key",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := openDB(cfg)
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260830

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.UserProfile{},
		&domain.Role{},
		&domain.Permission{},
		&domain.UserRoleMapping{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	roleRepo := repository.NewRoleRepository(db)
	seedRoles(roleRepo)

	// ---------- Infra ----------
	var producer interfaces.ProducerHandler
	if cfg.KafkaBroker != "" {
		producer = queue.NewProducer(
			cfg.KafkaBroker,
			cfg.KafkaTopic,
			cfg.KafkaUsername,
			cfg.KafkaPassword,
		)
	}

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)

	// ---------- Service ----------
	userSvc := services.NewUserService(userRepo, roleRepo, producer)

	// ---------- Handler ----------
	userHandler := handlers.NewUserHandler(userSvc)
	userHandler.SetupRoutes(app, cfg.APIKey)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

// openDB connects with a bounded fixed-backoff retry. Retrying stops
// at the connection level; individual operations never retry.
func openDB(cfg config.Config) (*gorm.DB, error) {
	backoff := time.Duration(cfg.DBConnectBackoffSec) * time.Second

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= cfg.DBConnectAttempts; attempt++ {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseDSN,
			PreferSimpleProtocol: true,
		}), &gorm.Config{TranslateError: true})
		if err == nil {
			return db, nil
		}
		log.Printf("database connection attempt %d/%d failed: %v", attempt, cfg.DBConnectAttempts, err)
		if attempt < cfg.DBConnectAttempts {
			time.Sleep(backoff)
		}
	}
	return nil, err
}

func seedRoles(repo repository.RoleRepository) {
	roles := []domain.Role{
		{Code: "ADMIN", Name: "Administrator", Permissions: []domain.Permission{
			{Name: "read"}, {Name: "write"},
		}},
		{Code: "VIEWER", Name: "Viewer", Permissions: []domain.Permission{
			{Name: "read"},
		}},
	}

	for i := range roles {
		if err := repo.SeedRole(&roles[i]); err != nil {
			log.Printf("seed role %s error: %v", roles[i].Code, err)
		}
	}
}
