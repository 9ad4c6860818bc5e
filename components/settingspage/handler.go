package settingspage

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/render"
	"github.com/goliatone/go-publishing/pkg/settings"
	"github.com/goliatone/go-publishing/pkg/store"
)

// maxFormBytes bounds the posted form; custom rules are the only large input.
const maxFormBytes = 1 << 20

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type handler struct {
	group *settings.Group
	store store.Store
	opts  Options
}

// HandlerWithOptions builds the settings page handler for group, persisting
// through st.
func HandlerWithOptions(group *settings.Group, st store.Store, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return &handler{group: group, store: st, opts: opts}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if h.group == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.show(w, r, nil)
	case http.MethodPost:
		h.submit(w, r)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead+", "+http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) show(w http.ResponseWriter, r *http.Request, notices []render.Notice) {
	ctx := r.Context()
	stored, err := h.store.Load(ctx, h.group.OptionKey())
	if err != nil {
		h.opts.Logger.Error("settingspage: load option", slog.String("option", h.group.OptionKey()), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var hidden []render.HiddenField
	if h.opts.CSRFToken != nil {
		hidden = append(hidden, render.CSRFToken(h.opts.CSRFToken(r)))
	}

	var body bytes.Buffer
	err = h.group.Render(ctx, &body, stored, settings.PageOptions{
		Title:   h.opts.Title,
		Action:  r.URL.Path,
		Notices: notices,
		Hidden:  hidden,
		Scripts: h.opts.Scripts,
	})
	if err != nil {
		h.opts.Logger.Error("settingspage: render", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body.Bytes())
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if r.PostForm.Get(render.OptionPageInput) != h.group.OptionKey() {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if h.opts.CSRFToken != nil {
		want := h.opts.CSRFToken(r)
		got := r.PostForm.Get(render.CSRFInput)
		if want == "" || subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
	}

	ctx := r.Context()
	submitted := render.ParseSubmission(r.PostForm, h.group.OptionKey())

	var notices render.Notices
	sanitized, err := h.group.Sanitize(ctx, submitted, &notices)
	if err != nil {
		if !errors.Is(err, settings.ErrUnknownField) {
			h.opts.Logger.Error("settingspage: sanitize", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		h.opts.Logger.Warn("settingspage: submission carried unknown fields", slog.Any("error", err))
		sanitized = dropUnknown(h.group.Schema(), sanitized)
	}

	if err := h.store.Save(ctx, h.group.OptionKey(), sanitized); err != nil {
		h.opts.Logger.Error("settingspage: save option", slog.String("option", h.group.OptionKey()), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.opts.Logger.Info("settingspage: option saved",
		slog.String("option", h.group.OptionKey()),
		slog.Int("notices", notices.Len()),
	)

	if notices.Len() > 0 {
		h.show(w, r, notices.Errors())
		return
	}
	http.Redirect(w, r, r.URL.Path+"?settings-updated=true", http.StatusSeeOther)
}

// dropUnknown keeps only keys the schema declares before persisting.
func dropUnknown(schema *model.Schema, values model.Values) model.Values {
	out := make(model.Values, len(values))
	for key, value := range values {
		if _, ok := schema.Field(key); ok {
			out[key] = value
		}
	}
	return out
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
