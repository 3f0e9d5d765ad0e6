package infrastructure

import (
	"net/url"
	"strconv"
	"strings"

	"reservationsClient/internal/modules/reservations/domain"
)

const reservationsPath = "/Reservations"

func reservationPath(id int) string {
	return reservationsPath + "/" + strconv.Itoa(id)
}

func reservationsByDatePath(date string) string {
	return reservationsPath + "/by-date/" + url.PathEscape(strings.TrimSpace(date))
}

func upcomingReservationsPath() string {
	return reservationsPath + "/upcoming"
}

func buildListValues(query domain.ListQuery) url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(query.Page))
	values.Set("pageSize", strconv.Itoa(query.PageSize))
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	return values
}
