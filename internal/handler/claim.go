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

// ClaimHandler bundles dependencies for the claim endpoints.  Claims cut
// across two collections, so both repositories are required.
type ClaimHandler struct {
	Claims *repository.ClaimRepo
	Items  *repository.ItemRepo
}

func NewClaimHandler(claims *repository.ClaimRepo, items *repository.ItemRepo) *ClaimHandler {
	if claims == nil || items == nil {
		panic("nil repository passed to NewClaimHandler")
	}
	return &ClaimHandler{Claims: claims, Items: items}
}

// List handles GET /claims in its three mutually exclusive modes:
//
//	?item_id=N       claims filed against one item (item owner only)
//	?type=my-claims  claims the caller filed, with the item joined
//	(no params)      claims received on the caller's items
func (h *ClaimHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if raw := strings.TrimSpace(c.QueryParam("item_id")); raw != "" {
		itemID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item_id"})
		}
		it, err := h.Items.GetByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
			}
			log.Printf("claims list: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
		}
		if it.OwnerID != uid {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized"})
		}
		claims, err := h.Claims.ListForItem(ctx, itemID)
		if err != nil {
			log.Printf("claims list: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
		}
		return c.JSON(http.StatusOK, claims)
	}

	if c.QueryParam("type") == "my-claims" {
		claims, err := h.Claims.ListByClaimant(ctx, uid)
		if err != nil {
			log.Printf("claims list: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
		}
		return c.JSON(http.StatusOK, claims)
	}

	claims, err := h.Claims.ListReceived(ctx, uid)
	if err != nil {
		log.Printf("claims list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, claims)
}

type createClaimReq struct {
	ItemID           uint64 `json:"item_id"`
	ProofDescription string `json:"proof_description"`
}

// Create handles POST /claims.  One claim per (item, claimant) pair;
// whether the item exists is deliberately not checked here.
func (h *ClaimHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createClaimReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ItemID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id is required"})
	}

	cl := &model.Claim{
		ItemID:           req.ItemID,
		ClaimantID:       uid,
		ProofDescription: strings.TrimSpace(req.ProofDescription),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Claims.Create(ctx, cl); err != nil {
		if errors.Is(err, repository.ErrDuplicateClaim) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "you have already claimed this item"})
		}
		log.Printf("claims create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create claim"})
	}
	return c.JSON(http.StatusCreated, cl)
}

type decideClaimReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /claims/:id.  Only the owner of the referenced
// item may decide a claim; an approval also marks the item as claimed.
// A claim whose item was deleted can no longer be decided at all.
func (h *ClaimHandler) UpdateStatus(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req decideClaimReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status, ok := model.ParseClaimStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cl, err := h.Claims.GetWithItem(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClaimNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "claim not found"})
		}
		log.Printf("claims decide: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if cl.Item == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "item associated with this claim not found"})
	}
	if cl.Item.OwnerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to manage this claim"})
	}

	if err := h.Claims.Decide(ctx, cl.ID, cl.Item.ID, status); err != nil {
		log.Printf("claims decide: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	cl.Status = status
	if status == model.ClaimApproved {
		cl.Item.Status = model.StatusClaimed
	}

	go func(ev queue.ClaimDecidedEvent) {
		_ = queuepublisher.PublishClaimDecided(context.Background(), ev)
	}(queue.ClaimDecidedEvent{
		ClaimID:    cl.ID,
		ItemID:     cl.Item.ID,
		ItemTitle:  cl.Item.Title,
		ClaimantID: cl.ClaimantID,
		DeciderID:  uid,
		Status:     string(status),
		DecidedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, cl)
}
