package lookup

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"xisbn/internal/httpx"
	"xisbn/internal/platform/xisbn"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /lookup/{isbn}", h.Get)
	mux.HandleFunc("GET /lookup/{isbn}/url", h.URL)
	mux.HandleFunc("POST /lookup", h.Post)
}

// Get handles GET /lookup/{isbn}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, r.PathValue("isbn"), valuesFromQuery(r.URL.Query()))
}

// Post handles POST /lookup with a JSON object body.
func (h *HTTPHandler) Post(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "INVALID_JSON", "Request body must be a JSON object", nil)
		return
	}
	identifier := body["isbn"]
	delete(body, "isbn")

	h.lookup(w, r, identifier, body)
}

// URL handles GET /lookup/{isbn}/url
func (h *HTTPHandler) URL(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.URL(r.PathValue("isbn"), valuesFromQuery(r.URL.Query()))
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, map[string]string{"url": u})
}

func (h *HTTPHandler) lookup(w http.ResponseWriter, r *http.Request, identifier any, values map[string]any) {
	res, err := h.service.Lookup(r.Context(), identifier, values)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", ContentType(res.Format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(res.Body))
}

func writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *xisbn.ValidationError
	if errors.As(err, &verr) {
		code := "VALIDATION_ERROR"
		if verr.Kind == xisbn.TypeError {
			code = "TYPE_ERROR"
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, code, "Invalid lookup parameters", []httpx.ErrorDetail{
			{Field: verr.Field, Message: verr.Message},
		})
		return
	}
	httpx.JSONErrorWithRequest(r, w, http.StatusBadGateway, "UPSTREAM_ERROR", "Lookup service unavailable", nil)
}

// valuesFromQuery keeps single-valued keys as text so a repeated key surfaces
// as a type error. fl may be repeated or comma separated.
func valuesFromQuery(q url.Values) map[string]any {
	values := make(map[string]any, len(q))
	for key, vs := range q {
		if key == "fl" || key == "fields" {
			var fl []string
			for _, v := range vs {
				fl = append(fl, strings.Split(v, ",")...)
			}
			values[key] = fl
			continue
		}
		if len(vs) == 1 {
			values[key] = vs[0]
		} else {
			values[key] = vs
		}
	}
	return values
}
