package backup

import (
	"pocket-crm/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type BackupController struct {
	Service BackupService
}

func NewBackupController(service BackupService) *BackupController {
	return &BackupController{Service: service}
}

// ListBackups godoc
// @Summary  List local backup archives, newest first
// @Tags     backups
// @Success  200 {array} BackupFile
// @Router   /api/backups [get]
func (ctrl *BackupController) ListBackups(c *fiber.Ctx) error {
	files, err := ctrl.Service.ListBackups(c.UserContext())
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(files)
}

// CreateBackup godoc
// @Summary  Write a new backup archive
// @Tags     backups
// @Success  201 {object} BackupFile
// @Router   /api/backups [post]
func (ctrl *BackupController) CreateBackup(c *fiber.Ctx) error {
	file, err := ctrl.Service.CreateBackup(c.UserContext())
	if err != nil {
		return api.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(file)
}

// DownloadBackup godoc
// @Summary  Download a backup archive
// @Tags     backups
// @Produce  application/zip
// @Param    name path string true "Archive name"
// @Router   /api/backups/{name} [get]
func (ctrl *BackupController) DownloadBackup(c *fiber.Ctx) error {
	path, err := ctrl.Service.BackupPath(c.Params("name"))
	if err != nil {
		return api.Fail(c, err)
	}
	return c.Download(path)
}

// DeleteBackup godoc
// @Summary  Delete a local backup archive
// @Tags     backups
// @Param    name path string true "Archive name"
// @Router   /api/backups/{name} [delete]
func (ctrl *BackupController) DeleteBackup(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteBackup(c.UserContext(), c.Params("name")); err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Backup deleted successfully"})
}

// RestoreBackup godoc
// @Summary  Replace all CRM data with the content of an archive
// @Tags     backups
// @Param    name path string true "Archive name"
// @Success  200 {object} Manifest
// @Router   /api/backups/{name}/restore [post]
func (ctrl *BackupController) RestoreBackup(c *fiber.Ctx) error {
	manifest, err := ctrl.Service.RestoreBackup(c.UserContext(), c.Params("name"))
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(manifest)
}

// ImportBackup godoc
// @Summary  Upload an archive into the local backup directory
// @Tags     backups
// @Accept   multipart/form-data
// @Param    file formData file true "Backup archive"
// @Success  201 {object} BackupFile
// @Router   /api/backups/import [post]
func (ctrl *BackupController) ImportBackup(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return api.BadRequest(c, "No file uploaded")
	}
	f, err := header.Open()
	if err != nil {
		return api.BadRequest(c, "Failed to open uploaded file")
	}
	defer f.Close()

	file, err := ctrl.Service.ImportArchive(c.UserContext(), f)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(file)
}

// UploadBackup godoc
// @Summary  Copy a local archive to the backup bucket
// @Tags     backups
// @Param    name path string true "Archive name"
// @Success  201 {object} CloudObject
// @Router   /api/backups/{name}/upload [post]
func (ctrl *BackupController) UploadBackup(c *fiber.Ctx) error {
	obj, err := ctrl.Service.UploadBackup(c.UserContext(), c.Params("name"))
	if err != nil {
		return api.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(obj)
}

// ListCloudBackups godoc
// @Summary  List archives in the backup bucket
// @Tags     backups
// @Success  200 {array} CloudObject
// @Router   /api/backups/cloud [get]
func (ctrl *BackupController) ListCloudBackups(c *fiber.Ctx) error {
	objects, err := ctrl.Service.ListCloudBackups(c.UserContext())
	if err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(objects)
}

type cloudKeyRequest struct {
	Key string `json:"key"`
}

// FetchCloudBackup godoc
// @Summary  Copy a bucket archive into the local backup directory
// @Tags     backups
// @Param    request body cloudKeyRequest true "Object key"
// @Success  201 {object} BackupFile
// @Router   /api/backups/cloud/download [post]
func (ctrl *BackupController) FetchCloudBackup(c *fiber.Ctx) error {
	var req cloudKeyRequest
	if err := c.BodyParser(&req); err != nil || req.Key == "" {
		return api.BadRequest(c, "key is required")
	}
	file, err := ctrl.Service.DownloadBackup(c.UserContext(), req.Key)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(file)
}

// DeleteCloudBackup godoc
// @Summary  Delete an archive from the backup bucket
// @Tags     backups
// @Param    key query string true "Object key"
// @Router   /api/backups/cloud [delete]
func (ctrl *BackupController) DeleteCloudBackup(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return api.BadRequest(c, "key is required")
	}
	if err := ctrl.Service.DeleteCloudBackup(c.UserContext(), key); err != nil {
		return api.Fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cloud backup deleted successfully"})
}
