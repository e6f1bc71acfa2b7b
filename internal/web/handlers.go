package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/amishk599/wellplan/internal/export"
	"github.com/amishk599/wellplan/internal/form"
	"github.com/amishk599/wellplan/internal/model"
	"github.com/amishk599/wellplan/internal/prompt"
)

// maxFormBytes bounds a posted form, including the plan text on download.
const maxFormBytes = 256 << 10

type formPage struct {
	Values  form.Values
	Error   string
	Metrics *model.Metrics
	Genders []string
	Goals   []string
	Diets   []string
	Months  []string
}

type resultPage struct {
	Heading    string
	Plan       *model.Plan
	Blocks     []string
	Values     form.Values
	ArchiveURL string
}

func (s *Server) newFormPage(v form.Values, errMsg string) formPage {
	page := formPage{Values: v, Error: errMsg}
	for _, g := range model.Genders {
		page.Genders = append(page.Genders, string(g))
	}
	for _, g := range model.FitnessGoals {
		page.Goals = append(page.Goals, string(g))
	}
	for _, d := range model.DietaryPreferences {
		page.Diets = append(page.Diets, string(d))
	}
	for m := time.January; m <= time.December; m++ {
		page.Months = append(page.Months, m.String())
	}
	if req, err := v.Request(); err == nil {
		if m, _, err := s.gen.Preview(req); err == nil {
			page.Metrics = &m
		}
	}
	return page
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "form.html", s.newFormPage(form.Defaults(s.now()), ""))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	v, ok := s.parseForm(w, r)
	if !ok {
		return
	}
	req, err := v.Request()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	m, _, err := s.gen.Preview(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	v, ok := s.parseForm(w, r)
	if !ok {
		return
	}
	fail := func(status int, err error) {
		s.render(w, status, "form.html", s.newFormPage(v, "Error generating the plan: "+err.Error()))
	}

	req, err := v.Request()
	if err != nil {
		fail(http.StatusBadRequest, err)
		return
	}
	if ok, wait := s.limiter.Allow(clientKey(r)); !ok {
		w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
		fail(http.StatusTooManyRequests, fmt.Errorf("please wait %s before generating another plan", wait.Round(time.Second)))
		return
	}

	plan, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		s.logger.Error("plan generation failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		fail(http.StatusBadGateway, err)
		return
	}

	page := resultPage{
		Heading: fmt.Sprintf("%s for %s", plan.Title, plan.Profile.Month),
		Plan:    plan,
		Blocks:  prompt.Blocks(plan.Raw),
		Values:  form.FromRequest(req),
	}
	if s.opts.Archive {
		page.ArchiveURL = "/plans/" + plan.ID + ".txt"
	}
	s.render(w, http.StatusOK, "result.html", page)
}

// handleDownload rebuilds the text file from the posted fields and plan text.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	v, ok := s.parseForm(w, r)
	if !ok {
		return
	}
	raw := r.PostForm.Get("plan")
	if raw == "" {
		http.Error(w, "missing plan text", http.StatusBadRequest)
		return
	}
	req, err := v.Request()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m, _, err := s.gen.Preview(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	plan := &model.Plan{
		Profile:         req.Profile,
		Metrics:         m,
		IncludeAyurveda: req.IncludeAyurveda,
		Title:           prompt.Title(req.IncludeAyurveda),
		Raw:             raw,
		Formatted:       prompt.Format(raw),
		CreatedAt:       s.now(),
	}
	writeAttachment(w, plan)
}

func (s *Server) handleArchived(w http.ResponseWriter, r *http.Request) {
	if !s.opts.Archive {
		http.NotFound(w, r)
		return
	}
	plan, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, model.ErrPlanNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("loading archived plan failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeAttachment(w, plan)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) (form.Values, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return form.Values{}, false
	}
	return form.FromURL(r.PostForm), true
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("rendering template failed", "template", name, "error", err)
	}
}

func writeAttachment(w http.ResponseWriter, plan *model.Plan) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(plan.Profile.Name, plan.CreatedAt)))
	fmt.Fprint(w, export.Text(plan))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "encode response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// clientKey identifies the caller for per-client rate limiting.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return "client:" + host
	}
	return "client:" + r.RemoteAddr
}
