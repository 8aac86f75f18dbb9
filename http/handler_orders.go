package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/entities"
	"storefront/orders"
)

type placeOrderRequest struct {
	ProductID       string                   `json:"product_id"`
	Quantity        int                      `json:"quantity"`
	DeliveryAddress entities.DeliveryAddress `json:"delivery_address"`
}

type placeOrderResponse struct {
	Message            string          `json:"message"`
	OrderNumber        string          `json:"order_number"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	NotificationStatus string          `json:"notification_status"`
}

func (h Handler) PostOrders(c echo.Context) error {
	user, ok := userFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no token, authorization denied")
	}

	var request placeOrderRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	result, err := h.orderPlacer.PlaceOrder(c.Request().Context(), orders.PlaceOrderRequest{
		UserID:          user.UserID,
		Username:        user.Username,
		Email:           user.Email,
		ProductID:       request.ProductID,
		Quantity:        request.Quantity,
		DeliveryAddress: request.DeliveryAddress,
	})
	switch {
	case errors.Is(err, orders.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, orders.ErrInsufficientStock):
		return echo.NewHTTPError(http.StatusBadRequest, "insufficient stock")
	case errors.Is(err, orders.ErrProductNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	case err != nil:
		return fmt.Errorf("failed placing order: %w", err)
	}

	return c.JSON(http.StatusCreated, placeOrderResponse{
		Message:            "Order placed successfully",
		OrderNumber:        result.OrderNumber,
		TotalAmount:        result.TotalAmount,
		NotificationStatus: result.NotificationStatus,
	})
}

func (h Handler) GetMyOrders(c echo.Context) error {
	user, ok := userFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no token, authorization denied")
	}

	myOrders, err := h.orderRepo.ListByUser(c.Request().Context(), user.UserID)
	if err != nil {
		return fmt.Errorf("failed getting orders: %w", err)
	}

	return c.JSON(http.StatusOK, myOrders)
}
