package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/wichananm65/eatery-backend/internal/catalog"
	"github.com/wichananm65/eatery-backend/internal/config"
	"github.com/wichananm65/eatery-backend/internal/device"
	"github.com/wichananm65/eatery-backend/internal/directory"
	"github.com/wichananm65/eatery-backend/internal/favorite"
	"github.com/wichananm65/eatery-backend/internal/infrastructure/database"
	"github.com/wichananm65/eatery-backend/internal/interface/presenter"
)

func main() {
	_ = godotenv.Load()
	if err := run(config.Load()); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if cfg.DirectoryAPIKey == "" {
		log.Print("warning: DIRECTORY_API_KEY is empty, directory requests will be rejected")
	}

	client, err := directory.NewClient(cfg.DirectoryBaseURL, cfg.DirectoryAPIKey, cfg.DirectoryTimeout)
	if err != nil {
		return fmt.Errorf("directory client: %w", err)
	}

	db, repo, err := openFavorites(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	setupCORS(app, cfg.CORSAllowOrigins)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "message": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	deviceHandler := device.NewHandler(cfg.JWTSecret)
	deviceHandler.RegisterPublicRoutes(app)

	app.Use(device.Middleware(cfg.JWTSecret))

	favoriteService := favorite.NewService(repo)
	favoriteHandler := favorite.NewHandler(favoriteService)
	favoriteHandler.RegisterProtectedRoutes(app)

	sessions := catalog.NewSessions(client, client, favoriteService, cfg.PageSize, presenter.DefaultGridLayout(), catalog.SessionLimits{
		IdleTimeout: cfg.SessionIdleTimeout,
		MaxSessions: cfg.MaxSessions,
	})
	catalogHandler := catalog.NewHandler(sessions)
	catalogHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func setupCORS(app *fiber.App, origins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,HEAD,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

// openFavorites picks Postgres when DATABASE_URL is set and the local
// SQLite file otherwise.
func openFavorites(cfg config.Config) (*sql.DB, favorite.Repository, error) {
	if cfg.DatabaseURL != "" {
		db, err := database.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db, database.Postgres); err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, favorite.NewPostgresRepository(db), nil
	}

	db, err := database.OpenSQLite(cfg.FavoritesDB)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db, database.SQLite); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, favorite.NewSQLiteRepository(db), nil
}
