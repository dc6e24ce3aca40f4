package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"avatar-wardrobe/app"
	"avatar-wardrobe/db"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		envPath := ".env"
		if err := godotenv.Overload(envPath); err != nil {
			log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		} else {
			log.Printf("Successfully loaded environment variables from %s (overriding system variables)", envPath)
			if path := os.Getenv("FIGUREDATA_PATH"); path != "" {
				log.Printf("DEBUG: FIGUREDATA_PATH after loading .env: %s", path)
			}
			if fileID := os.Getenv("FIGUREDATA_DRIVE_FILE_ID"); fileID != "" {
				log.Printf("DEBUG: figure data will be downloaded from Drive file %s", fileID)
			}
		}
	}

	// Initialize application
	mux := http.NewServeMux()
	if err := app.Initialize(mux); err != nil {
		log.Fatal(err)
	}
	defer db.CloseDB()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	// Remove leading colon if present (PORT from Render doesn't include it)
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}
	addr := "0.0.0.0:" + port
	log.Printf("Server starting on %s", addr)
	log.Printf("Wardrobe options endpoint: GET http://localhost:%s/wardrobe/settypes/hd/options?gender=M", port)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
