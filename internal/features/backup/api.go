package backup

import (
	"pocket-crm/internal/config"
	"pocket-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BackupApi struct {
	controller *BackupController
	config     *config.Config
}

func NewBackupApi(controller *BackupController, config *config.Config) *BackupApi {
	return &BackupApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all backup routes
func (h *BackupApi) Setup(app *fiber.App) {
	backups := app.Group("/api/backups", middleware.AuthMiddleware(h.config.SkipAuth))

	backups.Get("/", h.controller.ListBackups)
	backups.Post("/", h.controller.CreateBackup)
	backups.Post("/import", h.controller.ImportBackup)

	backups.Get("/cloud", h.controller.ListCloudBackups)
	backups.Post("/cloud/download", h.controller.FetchCloudBackup)
	backups.Delete("/cloud", h.controller.DeleteCloudBackup)

	backups.Get("/:name", h.controller.DownloadBackup)
	backups.Delete("/:name", h.controller.DeleteBackup)
	backups.Post("/:name/restore", h.controller.RestoreBackup)
	backups.Post("/:name/upload", h.controller.UploadBackup)
}
