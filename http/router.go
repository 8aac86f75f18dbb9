package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func NewHttpRouter(
	orderPlacer OrderPlacer,
	productRepo ProductRepository,
	orderRepo OrderRepository,
	jwtSecret []byte,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(otelecho.Middleware("storefront"))

	handler := Handler{
		orderPlacer: orderPlacer,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/products", handler.GetProducts)

	ordersGroup := e.Group("/orders", AuthMiddleware(jwtSecret))
	ordersGroup.POST("", handler.PostOrders)
	ordersGroup.GET("/my", handler.GetMyOrders)

	adminGroup := e.Group("/admin", AuthMiddleware(jwtSecret), AdminOnly)
	adminGroup.GET("/orders", handler.GetAdminOrders)
	adminGroup.PATCH("/orders/:order_number", handler.PatchOrderStatus)
	adminGroup.GET("/stats", handler.GetStats)

	return e
}
