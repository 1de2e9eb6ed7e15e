// Command createadmin provisions an admin account. Admin users are
// created only through this command, never via the public API.
//
// Usage: createadmin <username> <password>
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/klubbkatalog/backend/internal/config"
	"github.com/klubbkatalog/backend/internal/logger"
	"github.com/klubbkatalog/backend/internal/repositories"
	"github.com/klubbkatalog/backend/internal/services"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: createadmin <username> <password>")
		os.Exit(1)
	}
	username, password := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v\n", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v\n", err)
	}

	userRepo := repositories.NewUsersRepository(db, logger.Logger)
	authService := services.NewAuthService(userRepo, logger.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := authService.CreateAdmin(ctx, username, password)
	if err != nil {
		log.Fatalf("Failed to create admin user: %v\n", err)
	}

	fmt.Printf("Admin user created successfully: %s (id %d)\n", user.Username, user.ID)
}
