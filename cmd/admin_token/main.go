package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"appfiy/backoffice/internal/auth"
	"appfiy/backoffice/internal/config"
	"appfiy/backoffice/internal/constants"
)

// Prints an admin bearer token signed with ADMIN_JWT_SECRET.
func main() {
	subject := flag.String("sub", "", "who the token is for (email or name)")
	role := flag.String("role", string(constants.RoleEditor), "super_admin, admin or editor")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" {
		log.Fatal("-sub is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	token, err := auth.NewTokenSigner(cfg.AdminJWTSecret).IssueToken(*subject, constants.AdminRole(*role), *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}
	fmt.Println(token)
}
