package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/you/kpaforms/domain"
	"github.com/you/kpaforms/internal/config"
	"github.com/you/kpaforms/internal/infrastructure/auth"
	"github.com/you/kpaforms/internal/infrastructure/database"
	"github.com/you/kpaforms/internal/infrastructure/repositories"
	"github.com/you/kpaforms/internal/services"
)

// Creates the schema if needed and registers one user
func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	phone := flag.String("phone", "", "phone number, digits only")
	name := flag.String("name", "", "full name")
	email := flag.String("email", "", "optional email")
	password := flag.String("password", "", "password (min 6 characters)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, false)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}
	fmt.Println("✓ Schema is up to date")

	authSvc := services.NewAuthService(
		repositories.NewUserRepository(db),
		auth.NewPasswordService(),
		auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL),
		nil,
		nil,
	)

	profile, err := authSvc.Register(context.Background(), domain.RegisterInput{
		PhoneNumber: *phone,
		FullName:    *name,
		Email:       *email,
		Password:    *password,
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			for _, field := range verr.FieldNames() {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", field, verr.Fields[field])
			}
		}
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("✓ Created user id=%d phone=%s name=%q\n", profile.ID, profile.PhoneNumber, profile.FullName)
}
