package fiber

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"web-analytics-dashboard/internal/sessions/core/domain"
	"web-analytics-dashboard/internal/sessions/core/usecase"
)

const domainsLabel = "Domains"

type DashboardUseCase interface {
	Execute(ctx context.Context, in usecase.DashboardInput) (*domain.Dashboard, error)
}

type ListDomainsUseCase interface {
	Execute(ctx context.Context) (domain.DomainSet, error)
}

type CountSessionsUseCase interface {
	Execute(ctx context.Context, sel domain.Selection) (uint64, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type DashboardHandler struct {
	uc     DashboardUseCase
	title  string
	logger zerolog.Logger
}

func NewDashboardHandler(uc DashboardUseCase, title string, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, title: title, logger: logger}
}

// Index renders the Domains multiselect and the session count of the
// current selection. Every request runs the whole pipeline again.
// The form posts its selection in the body; a GET reads the query string.
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	args := c.Context().QueryArgs()
	if c.Method() == fiber.MethodPost {
		args = c.Request().PostArgs()
	}

	in := usecase.DashboardInput{
		Selection: argValues(args.PeekMulti("domain")),
		Submitted: args.Has("submitted"),
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", requestIDFrom(c)).Msg("dashboard render failed")
		return c.Status(http.StatusInternalServerError).Render("error", fiber.Map{
			"Message":   "The analytics store could not be queried.",
			"RequestID": requestIDFrom(c),
		})
	}

	selected := res.SelectedLookup()
	options := make([]optionView, 0, len(res.Domains))
	for _, d := range res.Domains {
		options = append(options, optionView{Value: d, Selected: selected.Has(d)})
	}

	return c.Status(http.StatusOK).Render("dashboard", fiber.Map{
		"Title":         h.title,
		"Label":         domainsLabel,
		"Options":       options,
		"Count":         res.Count,
		"SelectedCount": len(res.Selection),
	})
}

type SessionsHandler struct {
	lister  ListDomainsUseCase
	counter CountSessionsUseCase
	pinger  Pinger
	logger  zerolog.Logger
}

func NewSessionsHandler(lister ListDomainsUseCase, counter CountSessionsUseCase, pinger Pinger, logger zerolog.Logger) *SessionsHandler {
	return &SessionsHandler{lister: lister, counter: counter, pinger: pinger, logger: logger}
}

// ListDomains godoc
// @Summary List domains
// @Description Returns the distinct domains found in the sessions table
// @Tags Sessions
// @Produce json
// @Success 200 {object} DomainsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/domains [get]
func (h *SessionsHandler) ListDomains(c *fiber.Ctx) error {
	set, err := h.lister.Execute(c.UserContext())
	if err != nil {
		return h.internalError(c, err)
	}

	return c.Status(http.StatusOK).JSON(DomainsResponse{Domains: set})
}

// CountSessions godoc
// @Summary Count sessions
// @Description Counts sessions whose domain is one of the given domains. No domain counts 0.
// @Tags Sessions
// @Produce json
// @Param domain query []string false "Domain, repeat for several" collectionFormat(multi)
// @Success 200 {object} CountResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/sessions/count [get]
func (h *SessionsHandler) CountSessions(c *fiber.Ctx) error {
	domains := queryValues(c, "domain")

	count, err := h.counter.Execute(c.UserContext(), domains)
	if err != nil {
		return h.internalError(c, err)
	}

	return c.Status(http.StatusOK).JSON(CountResponse{Domains: domains, Count: count})
}

// Health godoc
// @Summary Health check
// @Description Pings the analytics store
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse
// @Router /healthz [get]
func (h *SessionsHandler) Health(c *fiber.Ctx) error {
	if err := h.pinger.Ping(c.UserContext()); err != nil {
		h.logger.Warn().Err(err).Msg("store ping failed")
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "store_unavailable",
		})
	}

	return c.Status(http.StatusOK).JSON(HealthResponse{Status: "ok"})
}

func (h *SessionsHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Str("request_id", requestIDFrom(c)).Str("path", c.Path()).Msg("store query failed")
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Error: "internal_server_error",
	})
}

// queryValues returns every value of a repeated query parameter, in order.
func queryValues(c *fiber.Ctx, key string) []string {
	return argValues(c.Context().QueryArgs().PeekMulti(key))
}

func argValues(raw [][]byte) []string {
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		values = append(values, string(v))
	}
	return values
}
