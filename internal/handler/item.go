package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lost-and-found/internal/model"
	"github.com/iliyamo/lost-and-found/internal/queue"
	"github.com/iliyamo/lost-and-found/internal/repository"
	queuepublisher "github.com/iliyamo/lost-and-found/internal/service"
)

// ItemHandler bundles dependencies for the item endpoints.
type ItemHandler struct {
	Items *repository.ItemRepo
}

func NewItemHandler(items *repository.ItemRepo) *ItemHandler {
	if items == nil {
		panic("nil repository passed to NewItemHandler")
	}
	return &ItemHandler{Items: items}
}

// List handles GET /items.  It is public; query parameters narrow the
// result: type (status), category, user_id (owner) and search (substring
// match on title or description, case-insensitive).
func (h *ItemHandler) List(c echo.Context) error {
	var f repository.ItemFilter

	if t := strings.TrimSpace(c.QueryParam("type")); t != "" {
		// Unknown status values match nothing rather than erroring; the
		// filter is a narrowing hint, not input validation.
		f.Status = model.ItemStatus(strings.ToLower(t))
	}
	f.Category = strings.TrimSpace(c.QueryParam("category"))
	f.Search = strings.TrimSpace(c.QueryParam("search"))
	if uid := strings.TrimSpace(c.QueryParam("user_id")); uid != "" {
		n, err := strconv.ParseUint(uid, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
		}
		f.OwnerID = n
	}

	items, err := h.Items.List(c.Request().Context(), f)
	if err != nil {
		log.Printf("items list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /items/:id.
func (h *ItemHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	it, err := h.Items.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		log.Printf("items get: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, it)
}

type createItemReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	ImageURL    string `json:"image_url"`
}

// Create handles POST /items.  The owner is always the authenticated
// caller; an owner_id supplied in the body is ignored by construction
// since the bound DTO has no such field.
func (h *ItemHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	req.Location = strings.TrimSpace(req.Location)
	switch {
	case req.Title == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	case req.Category == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category is required"})
	case req.Location == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location is required"})
	}

	status := model.StatusLost
	if req.Status != "" {
		s, ok := model.ParseItemStatus(req.Status)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		status = s
	}

	it := &model.Item{
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Location:    req.Location,
		Status:      status,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		OwnerID:     uid,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Items.Create(ctx, it); err != nil {
		log.Printf("items create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create item"})
	}

	// Best-effort activity event; the request never waits on the broker.
	go func(ev queue.ItemReportedEvent) {
		_ = queuepublisher.PublishItemReported(context.Background(), ev)
	}(queue.ItemReportedEvent{
		ItemID:     it.ID,
		OwnerID:    it.OwnerID,
		Title:      it.Title,
		Category:   it.Category,
		Location:   it.Location,
		Status:     string(it.Status),
		ReportedAt: it.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, it)
}

type updateItemReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
	ImageURL    *string `json:"image_url"`
}

// Update handles PUT /items/:id as a partial replace: only fields present
// in the body change.  Allowed for the item's owner or an admin.
func (h *ItemHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it, err := h.Items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		log.Printf("items update: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if it.OwnerID != uid && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized"})
	}

	patch := repository.ItemPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	}
	if req.Status != nil {
		s, ok := model.ParseItemStatus(*req.Status)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		patch.Status = &s
	}

	updated, err := h.Items.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		log.Printf("items update: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /items/:id.  Same authorization as Update.  Claims
// referencing the item are not removed.
func (h *ItemHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it, err := h.Items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		log.Printf("items delete: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if it.OwnerID != uid && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized"})
	}

	if err := h.Items.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		log.Printf("items delete: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "item removed"})
}
