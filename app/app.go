package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"avatar-wardrobe/app/controller"
	"avatar-wardrobe/app/router"
	"avatar-wardrobe/db"
	"avatar-wardrobe/repository"
	"avatar-wardrobe/service"
)

// Initialize initializes the application and registers its routes on mux
func Initialize(mux *http.ServeMux) error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Drive is optional: it is only needed to load figure data or icons from a folder
	var driveService service.DriveServiceInterface
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		ds, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return err
		}
		driveService = ds
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, Drive features disabled")
	}

	// Load the catalogs
	var figureDataDrive service.DriveServiceInterface
	figureDataFileID := os.Getenv("FIGUREDATA_DRIVE_FILE_ID")
	if figureDataFileID != "" {
		figureDataDrive = driveService
	}
	figureData := service.NewFigureDataService(os.Getenv("FIGUREDATA_PATH"), figureDataDrive, figureDataFileID)
	if err := figureData.Reload(context.Background()); err != nil {
		return fmt.Errorf("failed to load figure data: %w", err)
	}

	// Initialize repository
	avatarRepo := repository.NewAvatarRepository()

	// Initialize services
	imagingURL := os.Getenv("AVATAR_IMAGING_URL")
	avatarService := service.NewAvatarService(avatarRepo, figureData)
	imageService := service.NewAvatarImageService(imagingURL, service.NewImageCache(""))

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := strings.TrimPrefix(os.Getenv("PORT"), ":")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}
	sheetService := service.NewWardrobeSheetService(figureData, imagingURL, baseURL, "templates")

	var iconSync service.IconSyncServiceInterface
	if driveService != nil {
		iconSync = service.NewIconSyncService(driveService, "")
	}

	// Create controllers
	controllers := &router.Controllers{
		Avatar:   controller.NewAvatarController(avatarService, imageService),
		Wardrobe: controller.NewWardrobeController(figureData, sheetService, iconSync, os.Getenv("WARDROBE_ICONS_FOLDER_ID")),
	}

	// Setup routes using standard http router
	router.SetupRoutes(mux, controllers)

	return nil
}
