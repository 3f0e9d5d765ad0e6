package transport

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"reservationsClient/internal/modules/reservations/application/usecase"
	"reservationsClient/internal/modules/reservations/domain"
	"reservationsClient/internal/shared/dates"
	"reservationsClient/internal/shared/httputil"
)

// ReservationHandler exposes the working set over the local gateway.
type ReservationHandler struct {
	repo   *usecase.Repository
	rules  domain.Rules
	errors *httputil.ErrorMapper
}

func NewReservationHandler(repo *usecase.Repository, rules domain.Rules) *ReservationHandler {
	return &ReservationHandler{
		repo:  repo,
		rules: rules,
		errors: httputil.NewErrorMapper().
			WithMapping(domain.ErrMissingReservationID, http.StatusBadGateway, "").
			WithMapping(domain.ErrUnexpectedPayload, http.StatusBadGateway, "").
			WithDefault(http.StatusBadGateway, "reservation request failed"),
	}
}

type listResp struct {
	Reservations []domain.Reservation `json:"reservations"`
	Pagination   domain.Pagination    `json:"pagination"`
}

type stateResp struct {
	usecase.Snapshot
	FilteredReservations []domain.Reservation `json:"filteredReservations"`
}

// Register mounts the reservation routes under g. Mutations go through requireAuth.
func (h *ReservationHandler) Register(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/reservations", h.List)
	g.GET("/reservations/upcoming", h.Upcoming)
	g.GET("/reservations/today", h.Today)
	g.GET("/reservations/by-date/:date", h.ByDate)
	g.GET("/reservations/:id", h.Get)
	g.POST("/reservations", h.Create, requireAuth)
	g.PUT("/reservations/:id", h.Update, requireAuth)
	g.DELETE("/reservations/:id", h.Delete, requireAuth)
	g.GET("/state", h.State)
}

func (h *ReservationHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))
	search := c.QueryParam("search")

	h.repo.SetSearchQuery(search)
	status := domain.NormalizeReservationStatus(c.QueryParam("status"))
	h.repo.SetStatusFilter(status)

	result, err := h.repo.FetchReservations(c.Request().Context(), domain.ListQuery{Page: page, PageSize: pageSize, Search: search})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, listResp{
		Reservations: domain.Filter{Status: status}.Apply(result.Items),
		Pagination:   result.Pagination,
	})
}

func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	reservation, err := h.repo.FetchReservationByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) Create(c echo.Context) error {
	var req domain.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return httputil.RespondInvalid(c, err)
	}
	reservation, err := h.repo.CreateReservation(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, reservation)
}

func (h *ReservationHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req domain.UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return httputil.RespondInvalid(c, err)
	}
	reservation, err := h.repo.UpdateReservation(c.Request().Context(), id, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.repo.DeleteReservation(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationHandler) ByDate(c echo.Context) error {
	date := strings.TrimSpace(c.Param("date"))
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}
	if _, err := dates.Parse(date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	items, err := h.repo.FetchReservationsByDate(c.Request().Context(), date)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "reservations": newReservationViews(items, h.now())})
}

// Today lists the reservations of the current day, or of the day ?offset days away.
func (h *ReservationHandler) Today(c echo.Context) error {
	offset := 0
	if raw := strings.TrimSpace(c.QueryParam("offset")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "offset must be a number of days"})
		}
		offset = n
	}
	now := h.now()
	date := dates.Today(dates.AddDays(now, offset))
	items, err := h.repo.FetchReservationsByDate(c.Request().Context(), date)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "reservations": newReservationViews(items, now)})
}

func (h *ReservationHandler) Upcoming(c echo.Context) error {
	items, err := h.repo.FetchUpcoming(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": newReservationViews(items, h.now())})
}

func (h *ReservationHandler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, stateResp{
		Snapshot:             h.repo.Snapshot(),
		FilteredReservations: h.repo.FilteredReservations(),
	})
}

func (h *ReservationHandler) fail(c echo.Context, err error) error {
	info := h.errors.Map(err)
	slog.Warn("gateway reservation request failed",
		slog.String("method", c.Request().Method),
		slog.String("path", c.Path()),
		slog.Int("status", info.Status),
		slog.Any("error", err),
	)
	return c.JSON(info.Status, echo.Map{"error": info.Message})
}

// RegisterReservationRules validates create and update bodies with rules.
func RegisterReservationRules(v *httputil.RequestValidator, rules domain.Rules) {
	httputil.RegisterStructRule(v, func(req domain.CreateReservationRequest) map[string]string {
		return rules.ValidateCreate(req)
	})
	httputil.RegisterStructRule(v, func(req domain.UpdateReservationRequest) map[string]string {
		return rules.ValidateUpdate(req)
	})
}

func (h *ReservationHandler) now() time.Time {
	if h.rules.Now != nil {
		return h.rules.Now()
	}
	return time.Now()
}

func parseID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
