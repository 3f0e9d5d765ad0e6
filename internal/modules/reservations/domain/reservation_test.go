package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func decodeJSON(t *testing.T, body string) any {
	t.Helper()
	var payload any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return payload
}

func TestNormalizeReservationFromWireForm(t *testing.T) {
	raw := decodeJSON(t, `{
		"Id": 7,
		"CustomerName": "John Doe",
		"CustomerEmail": "john@example.com",
		"CustomerPhone": "1234567890",
		"ReservationDate": "2024-12-31",
		"ReservationTime": "19:00",
		"NumberOfGuests": 4,
		"Status": "PENDING",
		"CreatedBy": "admin",
		"CreatedDate": "2024-12-01T10:00:00Z"
	}`).(map[string]any)

	reservation, ok := NormalizeReservation(raw)
	if !ok {
		t.Fatal("expected reservation")
	}
	if reservation.ID != 7 {
		t.Fatalf("expected id 7, got %d", reservation.ID)
	}
	if reservation.CustomerName != "John Doe" || reservation.NumberOfGuests != 4 {
		t.Fatalf("unexpected fields: %+v", reservation)
	}
	if reservation.Status != ReservationStatusPending {
		t.Fatalf("expected Pending, got %q", reservation.Status)
	}
	if reservation.Notes != nil {
		t.Fatalf("expected nil notes, got %q", *reservation.Notes)
	}
	if reservation.UpdatedAt != reservation.CreatedAt {
		t.Fatalf("expected updatedAt to default to createdAt, got %q", reservation.UpdatedAt)
	}
	if reservation.CreatedBy != "admin" {
		t.Fatalf("unexpected createdBy: %q", reservation.CreatedBy)
	}
}

func TestNormalizeReservationFromCamelCase(t *testing.T) {
	raw := decodeJSON(t, `{
		"id": 3,
		"customerName": "Ana",
		"notes": "window seat",
		"status": "confirmed",
		"createdAt": "2024-01-01",
		"updatedAt": "2024-01-02"
	}`).(map[string]any)

	reservation, ok := NormalizeReservation(raw)
	if !ok {
		t.Fatal("expected reservation")
	}
	if reservation.Notes == nil || *reservation.Notes != "window seat" {
		t.Fatalf("unexpected notes: %v", reservation.Notes)
	}
	if reservation.Status != ReservationStatusConfirmed {
		t.Fatalf("expected Confirmed, got %q", reservation.Status)
	}
	if reservation.UpdatedAt != "2024-01-02" {
		t.Fatalf("unexpected updatedAt: %q", reservation.UpdatedAt)
	}
}

func TestNormalizeReservationRequiresID(t *testing.T) {
	if _, ok := NormalizeReservation(map[string]any{"CustomerName": "x"}); ok {
		t.Fatal("expected record without id to be rejected")
	}
}

func TestDecodeEnvelopeKinds(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		kind     EnvelopeKind
		expected int
	}{
		{name: "bare array", body: `[{"Id":1},{"Id":2},{"CustomerName":"no id"}]`, kind: EnvelopeBareArray, expected: 2},
		{name: "data array", body: `{"data":[{"Id":1}],"total":1}`, kind: EnvelopeEnvelopedArray, expected: 1},
		{name: "items array", body: `{"Items":[{"id":1},{"id":2}]}`, kind: EnvelopeEnvelopedArray, expected: 2},
		{name: "reservations array", body: `{"reservations":[]}`, kind: EnvelopeEnvelopedArray, expected: 0},
		{name: "bare object", body: `{"Id":9,"Status":"Completed"}`, kind: EnvelopeBareObject, expected: 1},
		{name: "data object", body: `{"data":{"Id":9}}`, kind: EnvelopeBareObject, expected: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env, err := DecodeEnvelope(decodeJSON(t, tc.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if env.Kind != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, env.Kind)
			}
			if got := len(env.Reservations()); got != tc.expected {
				t.Fatalf("expected %d reservations, got %d", tc.expected, got)
			}
		})
	}
}

func TestDecodeEnvelopeRejectsUnexpectedShapes(t *testing.T) {
	for _, body := range []string{`"text"`, `42`, `null`, `{}`} {
		if _, err := DecodeEnvelope(decodeJSON(t, body)); !errors.Is(err, ErrUnexpectedPayload) {
			t.Fatalf("body %s: expected ErrUnexpectedPayload, got %v", body, err)
		}
	}
}

func TestEnvelopeReservationSingleResource(t *testing.T) {
	env, err := DecodeEnvelope(decodeJSON(t, `{"data":{"Id":4,"CustomerName":"Eve"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reservation, err := env.Reservation()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reservation.ID != 4 || reservation.CustomerName != "Eve" {
		t.Fatalf("unexpected reservation: %+v", reservation)
	}

	env, _ = DecodeEnvelope(decodeJSON(t, `{"CustomerName":"no id"}`))
	if _, err := env.Reservation(); !errors.Is(err, ErrMissingReservationID) {
		t.Fatalf("expected ErrMissingReservationID, got %v", err)
	}

	env, _ = DecodeEnvelope(decodeJSON(t, `[{"Id":1}]`))
	if _, err := env.Reservation(); !errors.Is(err, ErrUnexpectedPayload) {
		t.Fatalf("expected ErrUnexpectedPayload for array, got %v", err)
	}
}

func TestNormalizePageSynthesizesPagination(t *testing.T) {
	env, _ := DecodeEnvelope(decodeJSON(t, `[{"Id":1},{"Id":2},{"Id":3}]`))

	page := NormalizePage(env, 1, 2)
	if page.Pagination.Total != 3 {
		t.Fatalf("expected total 3, got %d", page.Pagination.Total)
	}
	if page.Pagination.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", page.Pagination.TotalPages)
	}
	if page.Pagination.Page != 1 || page.Pagination.PageSize != 2 {
		t.Fatalf("expected requested page to be echoed, got %+v", page.Pagination)
	}
}

func TestNormalizePageUsesExplicitMetadata(t *testing.T) {
	env, _ := DecodeEnvelope(decodeJSON(t, `{"data":[{"Id":11}],"totalCount":41,"page":3,"pageSize":20,"totalPages":3}`))

	page := NormalizePage(env, 1, 10)
	expected := Pagination{Total: 41, Page: 3, PageSize: 20, TotalPages: 3}
	if page.Pagination != expected {
		t.Fatalf("expected %+v, got %+v", expected, page.Pagination)
	}
	if len(page.Items) != 1 || page.Items[0].ID != 11 {
		t.Fatalf("unexpected items: %+v", page.Items)
	}
}

func TestNormalizePageComputesMissingTotalPages(t *testing.T) {
	env, _ := DecodeEnvelope(decodeJSON(t, `{"items":[{"Id":1}],"total":25}`))

	page := NormalizePage(env, 2, 10)
	if page.Pagination.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.Pagination.TotalPages)
	}
	if page.Pagination.Page != 2 {
		t.Fatalf("expected page 2, got %d", page.Pagination.Page)
	}
}
