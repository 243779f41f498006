package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"strings"

	"appfiy/backoffice/internal/config"
	"appfiy/backoffice/internal/constants"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Registers a build domain and prints its generated license key.
func main() {
	siteURL := flag.String("site", "", "customer site url, e.g. https://shop.example.com")
	packageName := flag.String("package", "", "mobile package name")
	androidURL := flag.String("android-push", "", "android push notification url")
	iosURL := flag.String("ios-push", "", "ios push notification url")
	flag.Parse()

	if strings.TrimSpace(*siteURL) == "" {
		log.Fatal("-site is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	licenseKey := strings.ReplaceAll(uuid.New().String(), "-", "")

	var id int64
	err = db.QueryRow(constants.InsertBuildDomain,
		strings.TrimSpace(*siteURL), licenseKey, strings.TrimSpace(*packageName),
		nullIfEmpty(*androidURL), nullIfEmpty(*iosURL),
	).Scan(&id)
	if err != nil {
		log.Fatalf("insert build domain: %v", err)
	}

	fmt.Println("Build domain:", id)
	fmt.Println("License key:", licenseKey)
}

func nullIfEmpty(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
