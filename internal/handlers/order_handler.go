package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/docelar/pedidos/internal/auth"
	"github.com/docelar/pedidos/internal/models"
	"github.com/docelar/pedidos/internal/services"
	"github.com/docelar/pedidos/internal/storage"
	"github.com/docelar/pedidos/internal/validation"
)

// OrderHandler обрабатывает запросы, связанные с заказами.
type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder обрабатывает POST /api/orders.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	order, err := h.orderService.Create(c.Request().Context(), userID, &req)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, mapOrderToResponse(order))
}

// GetOrders обрабатывает GET /api/orders?page=N.
func (h *OrderHandler) GetOrders(c echo.Context) error {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.List(c.Request().Context(), userID, pageParam(c))
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, mapOrdersToResponse(orders))
}

// GetOrderByID обрабатывает GET /api/orders/:id.
// Ответ - массив из нуля или одного заказа.
func (h *OrderHandler) GetOrderByID(c echo.Context) error {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.GetByID(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, mapOrdersToResponse(orders))
}

// UpdateOrder обрабатывает PUT /api/orders/:id.
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	order, err := h.orderService.Update(c.Request().Context(), userID, c.Param("id"), &req)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, mapOrderToResponse(order))
}

// FilterOrders обрабатывает GET /api/orders/filter?term=&page=.
func (h *OrderHandler) FilterOrders(c echo.Context) error {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	term := c.QueryParam("term")
	orders, err := h.orderService.Filter(c.Request().Context(), userID, term, pageParam(c))
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, mapOrdersToResponse(orders))
}

// mapError переводит ошибки сервиса в HTTP-ответы: ошибки валидации в
// 400 со списком полей, отсутствие заказа в 404, остальное в 500.
func (h *OrderHandler) mapError(c echo.Context, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"errors": verr.Fields,
		})
	}

	if errors.Is(err, storage.ErrOrderNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	c.Logger().Errorf("order handler: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error": err.Error(),
	})
}

// pageParam читает номер страницы из query; по умолчанию 1.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// mapOrderToResponse преобразует domain модель заказа в DTO для HTTP-ответа.
func mapOrderToResponse(order *models.Order) *models.OrderResponse {
	value, _ := order.OrderValue.Float64()

	return &models.OrderResponse{
		ID:                 order.ID.String(),
		FullName:           order.FullName,
		Phone:              order.Phone,
		Details:            order.Details,
		DeliveryType:       string(order.DeliveryType),
		DeliveryAddress:    order.DeliveryAddress,
		DeliveryDate:       order.DeliveryDate.Format("2006-01-02"),
		DeliveryTime:       order.DeliveryTime,
		OrderValue:         value,
		PaymentMethod:      string(order.PaymentMethod),
		Paid:               order.Paid,
		Status:             string(order.Status),
		CancellationReason: order.CancellationReason,
		CreatedAt:          order.CreatedAt.Format(time.RFC3339),
	}
}

// mapOrdersToResponse преобразует список заказов; пустой список
// сериализуется как [], а не null.
func mapOrdersToResponse(orders []*models.Order) []*models.OrderResponse {
	response := make([]*models.OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, mapOrderToResponse(order))
	}
	return response
}
