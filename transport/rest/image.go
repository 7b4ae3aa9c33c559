package rest

import (
	"fmt"
	"io"

	"github.com/edikoyo/jamhub"
	"github.com/gofiber/fiber/v2"
)

// 10 MB, same cap the upload form advertises.
const maxImageSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ImageController struct {
	Store         jamhub.ImageStore
	ActivityStore jamhub.ActivityStore
}

func (c *ImageController) InstallTo(authorizer fiber.Handler, app *fiber.App) {
	app.Post("/image", CombineHandlers(authorizer, c.serveUpload))
}

func (c *ImageController) serveUpload(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(jamhub.User)
	if !ok {
		return fiber.ErrUnauthorized
	}

	fileHeader, err := ctx.FormFile("upload")
	if err != nil {
		requestLog(ctx).WithError(err).Infoln("Upload without file.")
		return fiber.NewError(fiber.StatusBadRequest, "no file")
	}
	if fileHeader.Size > maxImageSize {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "file too large")
	}
	if !allowedImageTypes[fileHeader.Header.Get(fiber.HeaderContentType)] {
		return fiber.NewError(fiber.StatusBadRequest, "unsupported image type")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	url, err := c.Store.Save(ctx.Context(), fileHeader.Filename, content)
	if err != nil {
		return fmt.Errorf("save upload: %w", err)
	}

	err = c.ActivityStore.AddLog(ctx.Context(), user.Id, jamhub.Activity{
		Name: "image_uploaded",
		Data: map[string]interface{}{"url": url},
	})
	if err != nil {
		return fmt.Errorf("add image_uploaded activity log: %w", err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(DataResponse{Data: url, Message: "Uploaded"})
}
