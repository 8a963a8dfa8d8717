package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// AccessLog logs one line per request after the handler chain completes.
func AccessLog(logger *log.Logger) fiber.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return func(c fiber.Ctx) error {
		start := time.Now()

		reqID := c.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(RequestIDHeader, reqID)

		err := c.Next()

		logger.Printf("request | id=%s method=%s path=%s status=%d duration=%s",
			reqID, c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
