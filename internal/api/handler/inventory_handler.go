package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

type InventoryHandler struct {
	inventory ports.InventoryService
}

func NewInventoryHandler(inventory ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type saveInventoryRequest struct {
	ID        string  `json:"id"`
	ItemName  string  `json:"item_name" validate:"required"`
	Category  string  `json:"category" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gte=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// List returns the stock visible to the caller's role.
//
// @Summary      List inventory
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.InventoryItem
// @Router       /inventory [get]
func (h *InventoryHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	items, err := h.inventory.List(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Save creates or updates a stock item.
//
// @Summary      Create or update an inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      saveInventoryRequest  true  "Item details (empty id creates)"
// @Success      200   {object}  domain.InventoryItem
// @Failure      400   {object}  map[string]string
// @Router       /inventory [post]
func (h *InventoryHandler) Save(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req saveInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.inventory.Save(c.Request().Context(), sess, domain.InventoryItem{
		ID:        req.ID,
		ItemName:  req.ItemName,
		Category:  req.Category,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete removes a stock item.
//
// @Summary      Delete an inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Param        id  path  string  true  "Item id"
// @Success      204  "no content"
// @Router       /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.inventory.Delete(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
