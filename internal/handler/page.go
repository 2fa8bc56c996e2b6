package handler

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/Jana57473/community-event-portal/internal/model"
	"github.com/Jana57473/community-event-portal/internal/repository"
	"github.com/Jana57473/community-event-portal/internal/service"
)

var pageTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Community Event Portal</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; }
.event-card { border: 1px solid #ccc; border-radius: 6px; padding: 0.5rem 1rem; margin: 0.5rem 0; }
.success { color: #137333; }
.error { color: #b00020; }
</style>
</head>
<body>
<h1>Community Event Portal</h1>
{{with .Notice}}<p id="formMessage" class="{{if .OK}}success{{else}}error{{end}}">{{.Text}}{{with $.Booked}} {{.Name}} has {{.Seats}} seats left.{{end}}</p>{{end}}

<form method="get" action="/">
  <select name="category" id="categoryFilter">
    <option value="all">All categories</option>
    {{range .Categories}}<option value="{{.}}"{{if eq . $.Category}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <input type="search" name="q" id="searchInput" placeholder="Search by name" value="{{.Search}}">
  <button type="submit">Filter</button>
</form>

<div id="eventsContainer">
{{range .Events}}
  <div class="event-card">
    <h3>{{.Name}}</h3>
    <p><strong>Date:</strong> {{.Date}}</p>
    <p><strong>Category:</strong> {{.Category}}</p>
    <p><strong>Location:</strong> {{.Location}}</p>
    <p><strong>Seats:</strong> <span id="seats-{{.ID}}">{{.Seats}}</span></p>
    <form method="post" action="/register/{{.ID}}">
      <button type="submit"{{if not .Available}} disabled{{end}}>Register</button>
    </form>
  </div>
{{else}}
  <p>No upcoming events.</p>
{{end}}
</div>

<h2>Register</h2>
<form method="post" action="/submit" id="registrationForm">
  <input name="name" placeholder="Name">
  <input name="email" type="email" placeholder="Email">
  <select name="event">
    <option value="">Select Event</option>
    {{range .Events}}{{if .Available}}<option value="{{.ID}}">{{.Name}}</option>{{end}}{{end}}
  </select>
  <button type="submit" id="registerBtn">Submit</button>
</form>
</body>
</html>
`))

// Redirect status codes. The page only ever shows the fixed text mapped to a
// known code, so a crafted link cannot put its own words in the banner.
const (
	statusRegistered      = "registered"
	statusSubmitted       = "submitted"
	statusIncomplete      = "incomplete"
	statusInvalidEvent    = "invalid_event"
	statusEventNotFound   = "event_not_found"
	statusSoldOut         = "sold_out"
	statusSubmissionError = "submission_failed"
)

type notice struct {
	Text string
	OK   bool
}

var notices = map[string]notice{
	statusRegistered:      {Text: "Registration successful!", OK: true},
	statusSubmitted:       {Text: "Registration submitted!", OK: true},
	statusIncomplete:      {Text: "Please fill all fields with a valid email."},
	statusInvalidEvent:    {Text: "That event link is not valid."},
	statusEventNotFound:   {Text: "That event no longer exists."},
	statusSoldOut:         {Text: "Sorry, that event is sold out."},
	statusSubmissionError: {Text: "Registration failed. Please try again."},
}

type pageData struct {
	Events     []model.Event
	Categories []string
	Category   string
	Search     string
	Notice     *notice
	Booked     *model.Event
}

// PageHandler serves the HTML event page and its form posts.
type PageHandler struct {
	svc *service.EventService
	log *zap.Logger
}

// NewPageHandler constructs a PageHandler.
func NewPageHandler(svc *service.EventService, log *zap.Logger) *PageHandler {
	return &PageHandler{svc: svc, log: log}
}

// Index handles GET /
func (p *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pageData{
		Category: q.Get("category"),
		Search:   q.Get("q"),
	}
	if n, ok := notices[q.Get("status")]; ok {
		data.Notice = &n
		if n.OK {
			data.Booked = p.bookedEvent(r, q.Get("event"))
		}
	}
	data.Events = p.svc.ListEvents(r.Context(), service.EventQuery{
		Category: data.Category,
		Search:   data.Search,
	})
	data.Categories = p.categories(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		p.log.Error("Failed to render page", zap.Error(err))
	}
}

// Register handles POST /register/{id}
func (p *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
		p.redirect(w, r, statusInvalidEvent, 0)
		return
	}

	seats, err := p.svc.Register(r.Context(), id)
	if err != nil {
		p.redirect(w, r, failureStatus(err), 0)
		return
	}
	p.log.Debug("Page registration", zap.Int64("event_id", id), zap.Int("seats_remaining", seats))
	p.redirect(w, r, statusRegistered, id)
}

// Submit handles POST /submit
func (p *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		p.redirect(w, r, statusIncomplete, 0)
		return
	}
	eventID, _ := strconv.ParseInt(r.PostForm.Get("event"), 10, 64)

	reg, err := p.svc.Submit(r.Context(), model.SubmitRequest{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		EventID: eventID,
	})
	if err != nil {
		p.redirect(w, r, failureStatus(err), 0)
		return
	}
	p.redirect(w, r, statusSubmitted, reg.EventID)
}

func failureStatus(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return statusIncomplete
	case errors.Is(err, repository.ErrNotFound):
		return statusEventNotFound
	case errors.Is(err, repository.ErrSoldOut):
		return statusSoldOut
	default:
		return statusSubmissionError
	}
}

func (p *PageHandler) redirect(w http.ResponseWriter, r *http.Request, status string, eventID int64) {
	v := url.Values{}
	v.Set("status", status)
	if eventID != 0 {
		v.Set("event", strconv.FormatInt(eventID, 10))
	}
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusSeeOther)
}

// bookedEvent looks up the event named by a success redirect so the banner
// reports its current seats from the store.
func (p *PageHandler) bookedEvent(r *http.Request, raw string) *model.Event {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	event, err := p.svc.GetEvent(r.Context(), id)
	if err != nil {
		return nil
	}
	return &event
}

func (p *PageHandler) categories(r *http.Request) []string {
	seen := map[string]struct{}{}
	for _, e := range p.svc.ListEvents(r.Context(), service.EventQuery{IncludePast: true}) {
		seen[e.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
