package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/entities"
)

type patchOrderStatusRequest struct {
	Status entities.OrderStatus `json:"status"`
}

func (h Handler) GetAdminOrders(c echo.Context) error {
	allOrders, err := h.orderRepo.ListAll(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed getting orders: %w", err)
	}

	return c.JSON(http.StatusOK, allOrders)
}

// PatchOrderStatus transitions the status field. Nothing else on a committed
// order is mutable.
func (h Handler) PatchOrderStatus(c echo.Context) error {
	orderNumber := c.Param("order_number")
	if orderNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "order number not provided")
	}

	var request patchOrderStatusRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if !request.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown order status: %s", request.Status))
	}

	order, err := h.orderRepo.UpdateStatus(c.Request().Context(), orderNumber, request.Status)
	if err != nil {
		return fmt.Errorf("failed updating order status: %w", err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h Handler) GetStats(c echo.Context) error {
	stats, err := h.orderRepo.Stats(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed getting order stats: %w", err)
	}

	return c.JSON(http.StatusOK, stats)
}
