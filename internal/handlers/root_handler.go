package handlers

import (
	"net/http"

	"transaksi-api/internal/dto"

	"github.com/labstack/echo/v4"
)

// RootMessage confirms the service is reachable.
const RootMessage = "API aktif dan bisa diakses!"

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// Root answers GET / without touching the database.
func (h *RootHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: RootMessage})
}
