package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics передает в observer метод, шаблон маршрута, статус и длительность запроса. Для запросов без
// маршрута route будет "unmatched".
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
