// Command admin creates a staff user.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "path to the yaml config")
	emailAddr := flag.String("email", "", "staff user e-mail")
	password := flag.String("password", "", "staff user password")
	flag.Parse()

	if *emailAddr == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	service := auth.NewService(repository.NewUserRepository(pool), auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()))
	user, err := service.Register(ctx, auth.RegisterInput{Email: *emailAddr, Password: *password, IsStaff: true})
	if err != nil {
		log.Fatalf("create staff user: %v", err)
	}
	log.Printf("staff user created: id=%d email=%s", user.ID, user.Email)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
