package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docelar/pedidos/internal/auth"
	"github.com/docelar/pedidos/internal/models"
	"github.com/docelar/pedidos/internal/services"
)

// StatsHandler обрабатывает запросы для графиков продаж.
type StatsHandler struct {
	orderService services.OrderService
}

// NewStatsHandler создаёт новый handler.
func NewStatsHandler(orderService services.OrderService) *StatsHandler {
	return &StatsHandler{orderService: orderService}
}

// MonthAmount обрабатывает GET /api/orders/graphs/monthAmount.
// Возвращает суммы продаж по месяцам по возрастанию ключа "YYYY-MM".
func (h *StatsHandler) MonthAmount(c echo.Context) error {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	totals, err := h.orderService.MonthlyTotals(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("failed to get monthly totals: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Маппинг domain моделей в DTO
	response := make([]*models.MonthlyTotalResponse, 0, len(totals))
	for _, t := range totals {
		sales, _ := t.TotalSales.Float64()
		response = append(response, &models.MonthlyTotalResponse{
			Month:      t.Month,
			TotalSales: sales,
		})
	}

	return c.JSON(http.StatusOK, response)
}
