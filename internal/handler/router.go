package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend-woltapp-completion/internal/logger"
)

type RouterDeps struct {
	Price   *PriceHandler
	Log     *logger.Log
	Metrics http.Handler
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID())
	if deps.Log != nil {
		r.Use(RequestLogger(deps.Log))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	api := r.Group("/api/v1")
	{
		api.GET("/delivery-order-price", deps.Price.GetPrice)
	}
	return r
}
