package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reservationsClient/internal/modules/reservations/domain"
)

// AppInfo is the static configuration the UI reads at startup.
type AppInfo struct {
	Title                   string                     `json:"title"`
	Version                 string                     `json:"version"`
	ItemsPerPage            int                        `json:"itemsPerPage"`
	MaxGuestsPerReservation int                        `json:"maxGuestsPerReservation"`
	Statuses                []domain.ReservationStatus `json:"statuses"`
}

// NewAppHandler serves info on GET /app, filling in the status list.
func NewAppHandler(info AppInfo) echo.HandlerFunc {
	if len(info.Statuses) == 0 {
		info.Statuses = domain.ReservationStatuses()
	}
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, info)
	}
}
