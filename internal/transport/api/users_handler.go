package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/service"
	"github.com/fsdevblog/usdt-exchange/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

type UsersHandler struct {
	userService UserServicer
}

func NewUsersHandler(userService UserServicer) *UsersHandler {
	return &UsersHandler{userService: userService}
}

type UserRegisterParams struct {
	Username  string `binding:"max_bytes=255" json:"username"`
	FirstName string `binding:"max_bytes=255" json:"first_name"`
	LastName  string `binding:"max_bytes=255" json:"last_name"`
}

type UserResponse struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Register POST RouteGroup + UsersRoute. Регистрирует пользователя из заголовка middlewares.ExternalUserIDHeader.
// Повторная регистрация возвращает существующего пользователя со статусом 200, новая 201.
func (h *UsersHandler) Register(c *gin.Context) {
	externalID := c.GetHeader(middlewares.ExternalUserIDHeader)
	if len(externalID) > maxExternalIDBytes {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "external user id is too long"})
		return
	}

	var params UserRegisterParams
	if c.Request.ContentLength != 0 {
		if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
			abortWithBindError(c, bindErr)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, created, err := h.userService.Register(ctx, service.RegisterUserArgs{
		ExternalID: externalID,
		Username:   params.Username,
		FirstName:  params.FirstName,
		LastName:   params.LastName,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, UserResponse{
		ID:         user.ID,
		ExternalID: user.ExternalID,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		CreatedAt:  user.CreatedAt,
	})
}
