package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jana57473/community-event-portal/internal/clock"
	"github.com/Jana57473/community-event-portal/internal/model"
	"github.com/Jana57473/community-event-portal/internal/repository"
	"github.com/Jana57473/community-event-portal/internal/seed"
	"github.com/Jana57473/community-event-portal/internal/service"
	"github.com/Jana57473/community-event-portal/internal/submission"
)

var now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T, opts ...submission.SimulatedOption) (http.Handler, *repository.EventRepository) {
	t.Helper()

	log := zap.NewNop()
	repo := repository.NewEventRepository(seed.Events(model.NewDate(now))...)
	opts = append([]submission.SimulatedOption{submission.WithDelay(0)}, opts...)
	svc := service.NewEventService(
		repo,
		repository.NewRegistrationRepository(),
		service.NewRegistrationCounter(),
		submission.NewSimulated(log, opts...),
		clock.Fixed(now),
		log,
	)
	return NewRouter(NewEventHandler(svc, log), NewPageHandler(svc, log), log, []string{"*"}), repo
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}

func TestListEvents(t *testing.T) {
	h, _ := newTestRouter(t)

	names := func(w *httptest.ResponseRecorder) []string {
		var events []model.Event
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
		out := []string{}
		for _, e := range events {
			out = append(out, e.Name)
		}
		return out
	}

	w := do(t, h, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Music Night", "Football Match", "Rock Concert"}, names(w))

	w = do(t, h, http.MethodGet, "/api/events?category=music", nil)
	assert.Equal(t, []string{"Music Night", "Rock Concert"}, names(w))

	w = do(t, h, http.MethodGet, "/api/events?category=music&include_past=true", nil)
	assert.Equal(t, []string{"Music Night", "Jazz Concert", "Rock Concert"}, names(w))

	w = do(t, h, http.MethodGet, "/api/events?q=ROCK", nil)
	assert.Equal(t, []string{"Rock Concert"}, names(w))

	w = do(t, h, http.MethodGet, "/api/events?category=theatre", nil)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestGetEvent(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/events/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var e model.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, "Football Match", e.Name)
	assert.Equal(t, now.AddDate(0, 0, 45).Format(model.DateLayout), e.Date.String())

	w = do(t, h, http.MethodGet, "/api/events/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, codeEventNotFound, decodeError(t, w).Code)

	w = do(t, h, http.MethodGet, "/api/events/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, codeInvalidID, decodeError(t, w).Code)
}

func TestCreateEvent(t *testing.T) {
	h, repo := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/api/events", model.CreateEventRequest{
		Name:     "Bread Baking",
		Date:     "2026-06-20",
		Category: "workshop",
		Location: "Kitchen",
		Seats:    10,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var e model.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, int64(6), e.ID)
	assert.Equal(t, 6, repo.Len())

	w = do(t, h, http.MethodPost, "/api/events", model.CreateEventRequest{Name: "No date", Category: "music", Location: "Hall", Seats: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, codeInvalidInput, decodeError(t, w).Code)

	w = do(t, h, http.MethodPost, "/api/events", map[string]any{"name": "X", "unknown": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, codeInvalidRequestBody, decodeError(t, w).Code)
}

func TestRegister(t *testing.T) {
	h, repo := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/api/events/1/register", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res model.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 29, res.SeatsRemaining)
	assert.Equal(t, "music", res.Category)
	assert.Equal(t, 1, res.CategoryTotal)

	stored, _ := repo.FindByID(1)
	assert.Equal(t, 29, stored.Seats)

	w = do(t, h, http.MethodPost, "/api/events/2/register", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, codeSoldOut, decodeError(t, w).Code)

	w = do(t, h, http.MethodPost, "/api/events/42/register", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/api/stats/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var totals map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &totals))
	assert.Equal(t, map[string]int{"music": 1}, totals)
}

func TestSubmit(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		h, repo := newTestRouter(t)

		w := do(t, h, http.MethodPost, "/api/registrations", model.SubmitRequest{
			Name: "Ada", Email: "ada@example.com", EventID: 3,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var reg model.Registration
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
		assert.Equal(t, 14, reg.SeatsRemaining)

		stored, _ := repo.FindByID(3)
		assert.Equal(t, 14, stored.Seats)

		w = do(t, h, http.MethodGet, "/api/events/3/registrations", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var regs []model.Registration
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regs))
		require.Len(t, regs, 1)
		assert.Equal(t, reg.ID, regs[0].ID)
	})

	t.Run("missing fields", func(t *testing.T) {
		h, _ := newTestRouter(t)

		w := do(t, h, http.MethodPost, "/api/registrations", model.SubmitRequest{Name: "Ada", EventID: 3})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, codeInvalidInput, decodeError(t, w).Code)
	})

	t.Run("endpoint rejects", func(t *testing.T) {
		h, repo := newTestRouter(t, submission.WithFailureRate(1))

		w := do(t, h, http.MethodPost, "/api/registrations", model.SubmitRequest{
			Name: "Ada", Email: "ada@example.com", EventID: 3,
		})
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, codeSubmissionFailed, decodeError(t, w).Code)

		stored, _ := repo.FindByID(3)
		assert.Equal(t, 15, stored.Seats)
	})

	t.Run("registrations of unknown event", func(t *testing.T) {
		h, _ := newTestRouter(t)

		w := do(t, h, http.MethodGet, "/api/events/77/registrations", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, codeNotFound, decodeError(t, w).Code)
}

func TestPage(t *testing.T) {
	t.Run("renders upcoming events only", func(t *testing.T) {
		h, _ := newTestRouter(t)

		w := do(t, h, http.MethodGet, "/?category=music", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Music Night")
		assert.Contains(t, body, "Rock Concert")
		assert.NotContains(t, body, "Jazz Concert")
		assert.NotContains(t, body, "Football Match")
	})

	t.Run("register button redirects with status", func(t *testing.T) {
		h, repo := newTestRouter(t)

		w := do(t, h, http.MethodPost, "/register/5", nil)

		require.Equal(t, http.StatusSeeOther, w.Code)
		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, statusRegistered, loc.Query().Get("status"))
		assert.Equal(t, "5", loc.Query().Get("event"))

		stored, _ := repo.FindByID(5)
		assert.Equal(t, 49, stored.Seats)

		w = do(t, h, http.MethodGet, loc.String(), nil)
		body := w.Body.String()
		assert.Contains(t, body, `class="success"`)
		assert.Contains(t, body, "Registration successful! Rock Concert has 49 seats left.")
	})

	t.Run("register button on sold out event", func(t *testing.T) {
		h, _ := newTestRouter(t)

		w := do(t, h, http.MethodPost, "/register/2", nil)

		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/?status="+statusSoldOut, w.Header().Get("Location"))
	})

	t.Run("form submission", func(t *testing.T) {
		h, repo := newTestRouter(t)

		form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "event": {"1"}}
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusSeeOther, w.Code)
		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, statusSubmitted, loc.Query().Get("status"))

		stored, _ := repo.FindByID(1)
		assert.Equal(t, 29, stored.Seats)
	})

	t.Run("incomplete form", func(t *testing.T) {
		h, repo := newTestRouter(t)

		form := url.Values{"name": {"Ada"}, "event": {"1"}}
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/?status="+statusIncomplete, w.Header().Get("Location"))

		stored, _ := repo.FindByID(1)
		assert.Equal(t, 30, stored.Seats)
	})

	t.Run("banner ignores free text from the link", func(t *testing.T) {
		h, _ := newTestRouter(t)

		w := do(t, h, http.MethodGet, "/?msg=Your+account+is+locked&ok=1&status=pwned", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.NotContains(t, body, "Your account is locked")
		assert.NotContains(t, body, `id="formMessage"`)
	})
}
