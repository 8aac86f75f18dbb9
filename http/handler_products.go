package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h Handler) GetProducts(c echo.Context) error {
	products, err := h.productRepo.GetAll(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed getting products: %w", err)
	}

	return c.JSON(http.StatusOK, products)
}
