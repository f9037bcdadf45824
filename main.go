package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/sundai-club/sundai-backend/api"
	"github.com/sundai-club/sundai-backend/config"
	"github.com/sundai-club/sundai-backend/database"
	"github.com/sundai-club/sundai-backend/models"
	"github.com/sundai-club/sundai-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()

	// Pull remote secrets when a Parameter Store prefix is configured.
	// Local env vars always win over remote values.
	if prefix := config.GetString(cfg, "SSM_PREFIX", ""); prefix != "" {
		if err := config.LoadSSM(context.Background(), cfg, prefix); err != nil {
			fmt.Printf("Error loading SSM parameters: %v\n", err)
			os.Exit(1)
		}
	}

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(cfg, "DB_HOST", "localhost"),
		config.GetString(cfg, "DB_USER", "postgres"),
		config.GetString(cfg, "DB_PASSWORD", ""),
		config.GetString(cfg, "DB_NAME", "sundai"),
		config.GetString(cfg, "DB_PORT", "5432"),
		config.GetString(cfg, "DB_SSLMODE", "require"),
	)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		fmt.Printf("Error enabling uuid-ossp extension: %v\n", err)
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	// Route reads to a replica when one is configured.
	if replicaDSN := config.GetString(cfg, "DB_REPLICA_DSN", ""); replicaDSN != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(replicaDSN)},
		}))
		if err != nil {
			fmt.Printf("Error registering read replica: %v\n", err)
			os.Exit(1)
		}
	}

	// If generating models, run generation and exit
	if strings.ToLower(os.Getenv("GENERATE_MODELS")) == "true" {
		fmt.Println("Generating query helpers...")
		models.GenerateQueryHelpers(db)
		return
	}

	if config.GetBool(cfg, "AUTO_MIGRATE", true) {
		if err := database.AutoMigrate(db); err != nil {
			fmt.Printf("Error migrating database: %v\n", err)
			os.Exit(1)
		}
	}

	currentDB := database.New(db)

	trending := services.NewTrendingService(
		currentDB.ProjectRepo(),
		config.GetInt(cfg, "TRENDING_LIMIT", 10),
		time.Duration(config.GetInt(cfg, "TRENDING_MAX_AGE_SECONDS", 300))*time.Second,
	)
	trending.Start(time.Duration(config.GetInt(cfg, "TRENDING_REFRESH_SECONDS", 300)) * time.Second)
	defer trending.Stop()

	email, err := services.NewEmailClient(
		config.GetString(cfg, "RESEND_API_KEY", ""),
		config.GetString(cfg, "RESEND_FROM_EMAIL", "hello@sundai.club"),
	)
	if err != nil {
		fmt.Printf("Error initializing email client: %v\n", err)
		os.Exit(1)
	}

	storage, err := services.NewStorage(context.Background(), config.GetString(cfg, "S3_BUCKET", "sundai-uploads"))
	if err != nil {
		fmt.Printf("Error initializing object storage: %v\n", err)
		os.Exit(1)
	}

	// The LLM intro drafter is optional; without a key the newsletter
	// falls back to a static intro.
	var drafter services.IntroDrafter
	if os.Getenv("OPENAI_API_KEY") != "" {
		drafter, err = services.NewLLMDrafter(config.GetString(cfg, "OPENAI_MODEL", "gpt-4o-mini"))
		if err != nil {
			fmt.Printf("Warning: Error initializing intro drafter: %v\n", err)
			drafter = nil
		}
	}

	newsletter := services.NewNewsletterService(
		currentDB,
		trending,
		email,
		drafter,
		[]byte(config.GetString(cfg, "UNSUBSCRIBE_SIGNING_KEY", "")),
		config.GetString(cfg, "PUBLIC_BASE_URL", "https://www.sundai.club"),
	)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, api.Deps{
		Trending:   trending,
		Newsletter: newsletter,
		Storage:    storage,
	})
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
