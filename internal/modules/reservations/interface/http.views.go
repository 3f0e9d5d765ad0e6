package transport

import (
	"time"

	"reservationsClient/internal/modules/reservations/domain"
	"reservationsClient/internal/shared/dates"
)

// reservationView decorates a record with display fields for agenda style lists.
type reservationView struct {
	domain.Reservation
	DisplayDate     string `json:"displayDate,omitempty"`
	DisplayTime     string `json:"displayTime,omitempty"`
	DisplayDateTime string `json:"displayDateTime,omitempty"`
	IsToday         bool   `json:"isToday"`
	DaysAway        int    `json:"daysAway"`
}

func newReservationViews(items []domain.Reservation, now time.Time) []reservationView {
	views := make([]reservationView, 0, len(items))
	for _, item := range items {
		views = append(views, newReservationView(item, now))
	}
	return views
}

// newReservationView leaves display fields empty when the stored values do not parse.
func newReservationView(item domain.Reservation, now time.Time) reservationView {
	view := reservationView{Reservation: item}
	if clock, err := dates.FormatTime(item.ReservationTime); err == nil {
		view.DisplayTime = clock
	}
	day, err := dates.Parse(item.ReservationDate)
	if err != nil {
		return view
	}
	view.DisplayDate = dates.FormatDate(day)
	if full, err := dates.FormatDateTime(day, item.ReservationTime); err == nil {
		view.DisplayDateTime = full
	}
	today, _ := dates.Parse(dates.Today(now))
	view.IsToday = dates.IsDateToday(day, today)
	view.DaysAway = dates.DifferenceInDays(day, today)
	return view
}
