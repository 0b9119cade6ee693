package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/topupstore/topup-api/internal/config"
	"github.com/topupstore/topup-api/internal/pkg/jwt"
)

// devtoken prints a signed access token for local testing against the API.
func main() {
	userID := flag.String("user", "", "user id (random when empty)")
	email := flag.String("email", "dev@example.com", "email claim")
	firstName := flag.String("first-name", "", "first name claim")
	lastName := flag.String("last-name", "", "last name claim")
	flag.Parse()

	cfg := config.Load()
	if cfg.IsProduction() {
		fmt.Fprintln(os.Stderr, "devtoken refuses to run with ENV=production")
		os.Exit(1)
	}

	id := uuid.New()
	if *userID != "" {
		parsed, err := uuid.Parse(*userID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid user id: %v\n", err)
			os.Exit(1)
		}
		id = parsed
	}

	svc := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)
	token, err := svc.GenerateAccessToken(jwt.Identity{
		UserID:    id,
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "user_id=%s expires_in=%s\n", id, svc.AccessTTL())
	fmt.Println(token)
}
