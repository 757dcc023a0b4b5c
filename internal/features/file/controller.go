package file

import (
	"pocket-crm/internal/common/api"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PhotoController struct {
	Service PhotoService
}

func NewPhotoController(service PhotoService) *PhotoController {
	return &PhotoController{Service: service}
}

// UploadPhoto godoc
// @Summary Upload a contact photo
// @Description Replaces the contact's photo; jpeg, png, gif or webp up to 10MB
// @Tags contacts
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Contact ID"
// @Param file formData file true "Image"
// @Success 201 {object} Photo
// @Failure 400 {object} map[string]interface{}
// @Router /api/contacts/{id}/photo [post]
func (ctrl *PhotoController) UploadPhoto(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	header, err := c.FormFile("file")
	if err != nil {
		return api.BadRequest(c, "Error retrieving file")
	}

	mimeType := header.Header.Get("Content-Type")
	if err := ctrl.Service.ValidateUpload(header.Size, mimeType); err != nil {
		return api.Fail(c, err)
	}

	src, err := header.Open()
	if err != nil {
		return api.Fail(c, err)
	}
	defer src.Close()

	photo, err := ctrl.Service.SavePhoto(c.UserContext(), id, mimeType, src)
	if err != nil {
		return api.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(photo)
}

// DeletePhoto godoc
// @Summary Remove a contact photo
// @Tags contacts
// @Param id path string true "Contact ID"
// @Success 204
// @Router /api/contacts/{id}/photo [delete]
func (ctrl *PhotoController) DeletePhoto(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return api.BadRequest(c, "Invalid ID")
	}
	if err := ctrl.Service.DeletePhoto(c.UserContext(), id); err != nil {
		return api.Fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
