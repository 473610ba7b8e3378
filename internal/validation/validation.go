package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/docelar/pedidos/internal/models"
	"github.com/docelar/pedidos/internal/utils"
)

// FieldError - ошибка валидации одного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error агрегирует ошибки валидации запроса. Ожидаемо невалидный ввод
// возвращается значением этого типа, а не паникой.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewError оборачивает список ошибок полей в ошибку валидации.
func NewError(fields []FieldError) *Error {
	return &Error{Fields: fields}
}

// validate - общий инстанс валидатора для правил из тегов структур.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В ошибках используем имена полей из json-тегов.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// ValidateCreate проверяет запрос на создание заказа.
// Телефон нормализуется на месте: в req.Phone остаются только цифры.
func ValidateCreate(req *models.CreateOrderRequest) []FieldError {
	errs := runTagRules(req)

	// Проверка количества цифр идёт по нормализованному значению; при
	// пустом исходном телефоне ошибку уже дал required.
	rawPhone := req.Phone
	req.Phone = utils.NormalizePhone(rawPhone)
	if rawPhone != "" && !utils.ValidPhone(req.Phone) {
		errs = append(errs, FieldError{Field: "phone", Message: "must contain 10 or 11 digits"})
	}

	if models.DeliveryType(req.DeliveryType) == models.DeliveryTypeDelivery &&
		strings.TrimSpace(req.DeliveryAddress) == "" {
		errs = append(errs, FieldError{Field: "deliveryAddress", Message: "is required for delivery orders"})
	}

	return errs
}

// ValidateUpdate проверяет частичное обновление заказа. Правила для поля
// применяются только когда поле присутствует; межполевые проверки
// срабатывают только при наличии поля-триггера.
func ValidateUpdate(req *models.UpdateOrderRequest) []FieldError {
	errs := runTagRules(req)

	if req.Phone != nil {
		normalized := utils.NormalizePhone(*req.Phone)
		if !utils.ValidPhone(normalized) {
			errs = append(errs, FieldError{Field: "phone", Message: "must contain 10 or 11 digits"})
		}
		*req.Phone = normalized
	}

	if req.DeliveryType != nil && models.DeliveryType(*req.DeliveryType) == models.DeliveryTypeDelivery {
		if req.DeliveryAddress == nil || strings.TrimSpace(*req.DeliveryAddress) == "" {
			errs = append(errs, FieldError{Field: "deliveryAddress", Message: "is required for delivery orders"})
		}
	}

	if req.Status != nil && models.OrderStatus(*req.Status) == models.OrderStatusCancelled {
		if req.CancellationReason == nil || strings.TrimSpace(*req.CancellationReason) == "" {
			errs = append(errs, FieldError{Field: "cancellationReason", Message: "is required when cancelling an order"})
		}
	}

	return errs
}

// ParseID проверяет и разбирает идентификатор заказа.
func ParseID(raw string) (uuid.UUID, []FieldError) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, []FieldError{{Field: "id", Message: "is required"}}
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, []FieldError{{Field: "id", Message: "is not a valid identifier"}}
	}

	return id, nil
}

// runTagRules прогоняет правила из validate-тегов и переводит их
// в ошибки полей.
func runTagRules(req interface{}) []FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: ruleMessage(fe)})
	}
	return fields
}

// ruleMessage строит сообщение для нарушенного правила.
func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("must match format %s", fe.Param())
	case "gte":
		return "must not be negative"
	default:
		return "is invalid"
	}
}
