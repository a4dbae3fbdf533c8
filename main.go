package main

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	config, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("Failed to load config: %v", err)
	}

	fonts, err := loadFont(config.FontPath)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	images, err := newDirStore(config.ImagesDir)
	if err != nil {
		log.Fatal(err)
	}
	b := newBoard(config.Geometry, fonts, images)

	var db *sql.DB
	if config.DBPath != "" {
		db, err = initDB(config.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		log.Println("Database initialized successfully.")
	}

	if config.authEnabled() {
		log.Println("Basic auth enabled.")
	}

	server := &http.Server{
		Addr:         config.Addr,
		Handler:      newRouter(config, b, db),
		ReadTimeout:  config.Timeout,
		WriteTimeout: config.Timeout,
	}

	log.Printf("Starting server on %s", config.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
