package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus описывает статус жизненного цикла заказа.
type OrderStatus string

const (
	OrderStatusNew           OrderStatus = "New"
	OrderStatusInPreparation OrderStatus = "InPreparation"
	OrderStatusDone          OrderStatus = "Done"
	OrderStatusDelivered     OrderStatus = "Delivered"
	OrderStatusCancelled     OrderStatus = "Cancelled"
)

// PaymentMethod описывает способ оплаты заказа.
type PaymentMethod string

const (
	PaymentMethodPIX       PaymentMethod = "PIX"
	PaymentMethodCash      PaymentMethod = "Cash"
	PaymentMethodCard      PaymentMethod = "Card"
	PaymentMethodUndefined PaymentMethod = "Undefined"
)

// DeliveryType описывает способ получения заказа.
type DeliveryType string

const (
	DeliveryTypePickup   DeliveryType = "pickup"
	DeliveryTypeDelivery DeliveryType = "delivery"
)

// Order представляет заказ клиента.
type Order struct {
	ID                 uuid.UUID       `db:"id"`
	UserID             uuid.UUID       `db:"user_id"`
	FullName           string          `db:"full_name"`
	Phone              string          `db:"phone"`
	Details            string          `db:"details"`
	DeliveryType       DeliveryType    `db:"delivery_type"`
	DeliveryAddress    string          `db:"delivery_address"`
	DeliveryDate       time.Time       `db:"delivery_date"`
	DeliveryTime       string          `db:"delivery_time"`
	OrderValue         decimal.Decimal `db:"order_value"`
	PaymentMethod      PaymentMethod   `db:"payment_method"`
	Paid               bool            `db:"paid"`
	Status             OrderStatus     `db:"status"`
	CancellationReason string          `db:"cancellation_reason"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

// CreateOrderRequest - запрос на создание заказа.
// Статус, способ оплаты и признак оплаты клиентом не передаются:
// они выставляются по умолчанию при создании.
type CreateOrderRequest struct {
	FullName        string  `json:"fullName" validate:"required,min=3"`
	Phone           string  `json:"phone" validate:"required"`
	Details         string  `json:"details" validate:"required,min=10"`
	DeliveryType    string  `json:"deliveryType" validate:"required,oneof=pickup delivery"`
	DeliveryAddress string  `json:"deliveryAddress"`
	DeliveryDate    string  `json:"deliveryDate" validate:"required,datetime=2006-01-02"`
	DeliveryTime    string  `json:"deliveryTime" validate:"required"`
	OrderValue      float64 `json:"orderValue" validate:"gte=0"`
}

// UpdateOrderRequest - запрос на частичное обновление заказа.
// Все поля опциональны; nil означает "не менять".
type UpdateOrderRequest struct {
	FullName           *string  `json:"fullName" validate:"omitempty,min=3"`
	Phone              *string  `json:"phone"`
	Details            *string  `json:"details" validate:"omitempty,min=10"`
	DeliveryType       *string  `json:"deliveryType" validate:"omitempty,oneof=pickup delivery"`
	DeliveryAddress    *string  `json:"deliveryAddress"`
	DeliveryDate       *string  `json:"deliveryDate" validate:"omitempty,datetime=2006-01-02"`
	DeliveryTime       *string  `json:"deliveryTime"`
	OrderValue         *float64 `json:"orderValue" validate:"omitempty,gte=0"`
	PaymentMethod      *string  `json:"paymentMethod" validate:"omitempty,oneof=PIX Cash Card Undefined"`
	Paid               *bool    `json:"paid"`
	Status             *string  `json:"status" validate:"omitempty,oneof=New InPreparation Done Delivered Cancelled"`
	CancellationReason *string  `json:"cancellationReason"`
}

// IsEmpty сообщает, что частичное обновление не содержит ни одного поля.
func (r *UpdateOrderRequest) IsEmpty() bool {
	return r.FullName == nil && r.Phone == nil && r.Details == nil &&
		r.DeliveryType == nil && r.DeliveryAddress == nil && r.DeliveryDate == nil &&
		r.DeliveryTime == nil && r.OrderValue == nil && r.PaymentMethod == nil &&
		r.Paid == nil && r.Status == nil && r.CancellationReason == nil
}

// OrderResponse - ответ с данными заказа.
type OrderResponse struct {
	ID                 string  `json:"id"`
	FullName           string  `json:"fullName"`
	Phone              string  `json:"phone"`
	Details            string  `json:"details"`
	DeliveryType       string  `json:"deliveryType"`
	DeliveryAddress    string  `json:"deliveryAddress,omitempty"`
	DeliveryDate       string  `json:"deliveryDate"`
	DeliveryTime       string  `json:"deliveryTime"`
	OrderValue         float64 `json:"orderValue"`
	PaymentMethod      string  `json:"paymentMethod"`
	Paid               bool    `json:"paid"`
	Status             string  `json:"status"`
	CancellationReason string  `json:"cancellationReason,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// MonthlyTotal - сумма продаж за календарный месяц (ключ "YYYY-MM").
type MonthlyTotal struct {
	Month      string          `db:"month"`
	TotalSales decimal.Decimal `db:"total_sales"`
}

// MonthlyTotalResponse DTO для ответа графика продаж по месяцам.
type MonthlyTotalResponse struct {
	Month      string  `json:"month"`
	TotalSales float64 `json:"totalSales"`
}
