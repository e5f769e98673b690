package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// errorStatus сопоставляет ошибку сервисного слоя с http статусом. Второе значение сообщает, можно ли показать
// текст ошибки клиенту.
func errorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooSmall):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, true
	case errors.Is(err, domain.ErrOwnerConflict),
		errors.Is(err, domain.ErrUserNotRegistered):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, false
	case errors.Is(err, domain.ErrPriceUnavailable):
		return http.StatusServiceUnavailable, false
	default:
		return http.StatusInternalServerError, false
	}
}

// abortWithServiceError прерывает запрос со статусом, соответствующим ошибке. Текст внутренних ошибок
// маскируется в middlewares.Errors.
func abortWithServiceError(c *gin.Context, err error) {
	status, public := errorStatus(err)
	errType := gin.ErrorTypePrivate
	if public {
		errType = gin.ErrorTypePublic
	}
	_ = c.AbortWithError(status, err).SetType(errType)
}

// abortWithBindError 422 для ошибок валидации, 400 для нечитаемого тела.
func abortWithBindError(c *gin.Context, bindErr error) {
	var valErrs validator.ValidationErrors
	if errors.As(bindErr, &valErrs) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": validationMessages(valErrs)})
		return
	}
	_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
}

func validationMessages(valErrs validator.ValidationErrors) map[string]string {
	messages := make(map[string]string, len(valErrs))
	for _, fe := range valErrs {
		msg := "failed on " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		messages[fe.Field()] = msg
	}
	return messages
}

// idParam читает положительный id из параметра маршрута.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		_ = c.AbortWithError(http.StatusNotFound, fmt.Errorf("invalid %s %q", name, c.Param(name))).
			SetType(gin.ErrorTypePrivate)
		return 0, false
	}
	return id, true
}
