package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Keerthan22-sys/Instigar/pkg/api/errors"
	apimw "github.com/Keerthan22-sys/Instigar/pkg/api/middleware"
	"github.com/Keerthan22-sys/Instigar/pkg/leadview"
	"github.com/Keerthan22-sys/Instigar/pkg/metrics"
	"github.com/Keerthan22-sys/Instigar/pkg/models"
	"github.com/Keerthan22-sys/Instigar/pkg/phone"
	"github.com/Keerthan22-sys/Instigar/pkg/session"
	"github.com/Keerthan22-sys/Instigar/pkg/store"
	"github.com/Keerthan22-sys/Instigar/pkg/upstream"
)

// LeadHandler serves the lead table and forwards mutations upstream.
// Reads run the in-memory pipeline over the session's collection; writes
// go through the session store so the collection stays consistent with
// the upstream response.
type LeadHandler struct {
	sessions       *session.Manager
	metrics        *metrics.Metrics
	validator      *validator.Validate
	maxUploadBytes int64
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(sessions *session.Manager, m *metrics.Metrics, maxUploadBytes int64) *LeadHandler {
	return &LeadHandler{
		sessions:       sessions,
		metrics:        m,
		validator:      validator.New(),
		maxUploadBytes: maxUploadBytes,
	}
}

// List returns one page of the lead table. The collection is fetched
// wholesale on first access or when refresh=true; filtering, sorting and
// pagination run in memory against the session's snapshot.
func (h *LeadHandler) List(c echo.Context) error {
	sess := apimw.SessionFromContext(c)
	kind, err := leadKind(c.QueryParam("type"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "type must be 'leads' or 'walkin'",
		})
	}

	st := storeFor(sess, kind)
	refresh := c.QueryParam("refresh") == "true"
	if refresh || (len(st.Leads()) == 0 && st.Err() == "") {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
		err := st.FetchAll(ctx, kind)
		cancel()
		switch {
		case err == nil:
			h.metrics.LeadsFetched.Inc()
		case err == store.ErrSuperseded:
			// A newer fetch owns the collection now; serve its snapshot.
		default:
			return h.upstreamFailure(c, sess, err)
		}
	}

	state, err := viewStateFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	}

	// A filter or sort change invalidates the old page position.
	if sess.RememberView(kind, viewSignature(state)) {
		state.Page = 1
	}

	page, total := leadview.Apply(st.Leads(), state)

	data := make([]models.LeadResponse, 0, len(page.Items))
	for _, l := range page.Items {
		data = append(data, l.ToResponse())
	}

	resp := models.LeadListResponse{
		Data: data,
		Pagination: models.PaginationInfo{
			Page:        state.Page,
			PageSize:    state.PageSize,
			Total:       total,
			TotalPages:  page.TotalPages,
			PageNumbers: page.PageNumbers,
			HasNext:     state.Page < page.TotalPages,
			HasPrev:     state.Page > 1 && page.TotalPages > 0,
		},
		Filters: appliedFilters(state),
	}
	return c.JSON(http.StatusOK, resp)
}

// Create validates the form payload, forwards it upstream and returns
// the server-assigned record. On failure nothing is stored, so the form
// keeps its input.
func (h *LeadHandler) Create(c echo.Context) error {
	var req models.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}
	if !phone.IsPlausible(req.Phone, "") {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request data. Please check your input and try again.",
			Fields:  map[string]string{"phone": "Please enter a valid phone number."},
		})
	}

	sess := apimw.SessionFromContext(c)
	kind := models.KindLeads
	if req.Type == models.KindWalkin {
		kind = models.KindWalkin
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	lead, err := storeFor(sess, kind).Create(ctx, req.ToSpring())
	if err != nil {
		h.metrics.LeadMutations.WithLabelValues("create", "failed").Inc()
		return h.upstreamFailure(c, sess, err)
	}
	h.metrics.LeadMutations.WithLabelValues("create", "success").Inc()

	return c.JSON(http.StatusCreated, lead.ToResponse())
}

// Update forwards a partial patch and returns the server's post-update
// record, which replaces the in-memory entry wholesale.
func (h *LeadHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Lead id must be a positive integer",
		})
	}
	kind, err := leadKind(c.QueryParam("type"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "type must be 'leads' or 'walkin'",
		})
	}

	var req models.UpdateLeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}
	if req.Phone != nil && !phone.IsPlausible(*req.Phone, "") {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request data. Please check your input and try again.",
			Fields:  map[string]string{"phone": "Please enter a valid phone number."},
		})
	}

	patch := req.ToSpring()
	if len(patch) == 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Patch contains no fields",
		})
	}

	sess := apimw.SessionFromContext(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	lead, err := storeFor(sess, kind).Update(ctx, id, patch)
	if err != nil {
		h.metrics.LeadMutations.WithLabelValues("update", "failed").Inc()
		return h.upstreamFailure(c, sess, err)
	}
	h.metrics.LeadMutations.WithLabelValues("update", "success").Inc()

	return c.JSON(http.StatusOK, lead.ToResponse())
}

// Delete removes a lead. The in-memory entry is dropped only after the
// upstream delete succeeds.
func (h *LeadHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Lead id must be a positive integer",
		})
	}
	kind, err := leadKind(c.QueryParam("type"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "type must be 'leads' or 'walkin'",
		})
	}

	sess := apimw.SessionFromContext(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := storeFor(sess, kind).Delete(ctx, id); err != nil {
		h.metrics.LeadMutations.WithLabelValues("delete", "failed").Inc()
		return h.upstreamFailure(c, sess, err)
	}
	h.metrics.LeadMutations.WithLabelValues("delete", "success").Inc()

	return c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Lead deleted",
	})
}

// UploadCSV forwards a CSV file upstream and refetches the collection so
// imported rows show up immediately.
func (h *LeadHandler) UploadCSV(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Multipart form must contain a 'file' field",
		})
	}
	if fileHeader.Size > h.maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
			Error:   "file_too_large",
			Message: "Uploaded file exceeds the size limit.",
		})
	}
	kind, err := leadKind(c.QueryParam("type"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "type must be 'leads' or 'walkin'",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errors.InternalError(c, err)
	}
	defer src.Close()

	sess := apimw.SessionFromContext(c)
	st := storeFor(sess, kind)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	if err := st.UploadCSV(ctx, fileHeader.Filename, src); err != nil {
		h.metrics.CSVUploads.WithLabelValues("failed").Inc()
		return h.upstreamFailure(c, sess, err)
	}
	h.metrics.CSVUploads.WithLabelValues("success").Inc()

	// Best effort; the next list request refetches anyway on failure.
	if err := st.FetchAll(ctx, kind); err == nil {
		h.metrics.LeadsFetched.Inc()
	}

	return c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "CSV imported",
	})
}

// A 401 from the upstream means the token the session was built on is
// dead, so the session goes with it. A 403 is a permission problem with
// a live token and leaves the session alone.
func (h *LeadHandler) upstreamFailure(c echo.Context, sess *session.Session, err error) error {
	if upstream.IsUnauthorized(err) {
		h.sessions.Delete(sess.Token)
		h.metrics.ActiveSessions.Set(float64(h.sessions.Count()))
	}
	return errors.UpstreamError(c, err)
}

func storeFor(sess *session.Session, kind string) *store.Store {
	if kind == models.KindWalkin {
		return sess.Walkins
	}
	return sess.Leads
}

func leadKind(param string) (string, error) {
	switch param {
	case "", models.KindLeads:
		return models.KindLeads, nil
	case models.KindWalkin:
		return models.KindWalkin, nil
	default:
		return "", fmt.Errorf("unknown lead type %q", param)
	}
}

func viewStateFromQuery(c echo.Context) (leadview.ViewState, error) {
	state := leadview.DefaultViewState()

	if raw := c.QueryParam("date"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return state, fmt.Errorf("date must be formatted YYYY-MM-DD")
		}
		state.Filter.Date = &day
	}

	params := c.QueryParams()
	categories := map[leadview.Category]string{
		leadview.CategoryStage:      "stage",
		leadview.CategoryChannel:    "channel",
		leadview.CategoryStatus:     "status",
		leadview.CategoryAssignedTo: "assignedTo",
	}
	for category, key := range categories {
		if values := params[key]; len(values) > 0 {
			if state.Filter.Filters == nil {
				state.Filter.Filters = make(map[leadview.Category][]string)
			}
			state.Filter.Filters[category] = values
		}
	}

	if raw := c.QueryParam("sort"); raw != "" {
		field := leadview.Field(raw)
		if !leadview.ValidField(field) {
			return state, fmt.Errorf("unknown sort field")
		}
		state.SortField = field
	}
	switch raw := c.QueryParam("direction"); raw {
	case "":
	case string(leadview.Ascending), string(leadview.Descending):
		state.SortDirection = leadview.Direction(raw)
	default:
		return state, fmt.Errorf("direction must be 'asc' or 'desc'")
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return state, fmt.Errorf("page must be a positive integer")
		}
		state.Page = page
	}

	return state, nil
}

// viewSignature identifies a filter/sort combination, ignoring the page.
func viewSignature(state leadview.ViewState) string {
	return fmt.Sprintf("%+v", appliedFilters(state))
}

func appliedFilters(state leadview.ViewState) models.AppliedFilters {
	applied := models.AppliedFilters{
		Stage:      state.Filter.Filters[leadview.CategoryStage],
		Channel:    state.Filter.Filters[leadview.CategoryChannel],
		Status:     state.Filter.Filters[leadview.CategoryStatus],
		AssignedTo: state.Filter.Filters[leadview.CategoryAssignedTo],
		Sort:       string(state.SortField),
		Direction:  string(state.SortDirection),
	}
	if state.Filter.Date != nil {
		applied.Date = state.Filter.Date.Format("2006-01-02")
	}
	return applied
}
