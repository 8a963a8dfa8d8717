package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
)

func queryInt(c fiber.Ctx, key string, def int) int {
	s := c.Query(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
