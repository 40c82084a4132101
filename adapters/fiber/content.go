package fiber

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/knowtasks/knowtasks/core"
)

func (a *Adapter) createContent(c fiber.Ctx) error {
	identity := currentIdentity(c)

	var input core.CreateContentInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse{Success: false, Message: "invalid request body"})
	}

	result, err := a.content.Create(c.Context(), identity.Claims, input)
	if err != nil {
		return a.handleError(c, err)
	}

	body := fiber.Map{
		"success": true,
		"item":    result.Item,
	}
	if result.UploadURL != "" {
		body["uploadUrl"] = result.UploadURL
	}
	return c.Status(http.StatusCreated).JSON(body)
}

func (a *Adapter) listContent(c fiber.Ctx) error {
	filter := core.ContentFilter{
		Kind:    core.ContentKind(c.Query("kind")),
		Subject: c.Query("subject"),
		OwnerID: c.Query("owner"),
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return c.Status(http.StatusBadRequest).JSON(errorResponse{Success: false, Message: "invalid limit"})
		}
		filter.Limit = n
	}

	items, err := a.content.List(c.Context(), filter)
	if err != nil {
		return a.handleError(c, err)
	}
	if items == nil {
		items = []*core.ContentItem{}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"items":   items,
	})
}

func (a *Adapter) getContent(c fiber.Ctx) error {
	item, err := a.content.Get(c.Context(), c.Params("id"))
	if err != nil {
		return a.handleError(c, err)
	}

	body := fiber.Map{
		"success": true,
		"item":    item,
	}
	// A presign failure degrades the response to metadata only.
	url, err := a.content.DownloadURL(c.Context(), item)
	if err != nil {
		a.log.Warn(c.Context(), "failed to presign download", "id", item.ID, "error", err)
	} else if url != "" {
		body["downloadUrl"] = url
	}
	return c.Status(http.StatusOK).JSON(body)
}

func (a *Adapter) updateContent(c fiber.Ctx) error {
	identity := currentIdentity(c)

	var input core.UpdateContentInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse{Success: false, Message: "invalid request body"})
	}

	item, err := a.content.Update(c.Context(), identity.Claims, c.Params("id"), input)
	if err != nil {
		return a.handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"item":    item,
	})
}

func (a *Adapter) deleteContent(c fiber.Ctx) error {
	identity := currentIdentity(c)

	if err := a.content.Delete(c.Context(), identity.Claims, c.Params("id")); err != nil {
		return a.handleError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}
