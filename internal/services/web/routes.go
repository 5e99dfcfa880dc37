package web

import (
	"errors"
	"fmt"
	"net/http"

	gokitlog "github.com/go-kit/log"
	"github.com/louisbranch/cgpa/internal/platform/otel"
	webi18n "github.com/louisbranch/cgpa/internal/services/web/i18n"
	apperrors "github.com/louisbranch/cgpa/internal/services/web/platform/errors"
	"github.com/louisbranch/cgpa/internal/services/web/platform/httpx"
	"github.com/louisbranch/cgpa/internal/services/web/platform/observability"
	"github.com/louisbranch/cgpa/internal/services/web/platform/profilecookie"
	"github.com/louisbranch/cgpa/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/cgpa/internal/services/web/platform/weberror"
	"github.com/louisbranch/cgpa/internal/services/web/routepath"
	"github.com/louisbranch/cgpa/internal/services/web/static"
	webtemplates "github.com/louisbranch/cgpa/internal/services/web/templates"
	"github.com/louisbranch/cgpa/internal/session"
	"go.opentelemetry.io/otel/trace"
)

type handler struct {
	store  session.SnapshotStore
	logger gokitlog.Logger
	loc    webtemplates.Localizer
	policy requestmeta.SchemePolicy
	tracer trace.Tracer
	locks  *profileLocks
}

// NewHandler assembles the routes and middleware of the web service.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("snapshot store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = gokitlog.NewNopLogger()
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}
	profiles, err := profilecookie.NewIssuer(cfg.ProfileKey,
		profilecookie.WithSecure(cfg.SecureCookies),
		profilecookie.WithSchemePolicy(policy),
	)
	if err != nil {
		return nil, fmt.Errorf("profile cookie: %w", err)
	}

	h := &handler{
		store:  cfg.Store,
		logger: logger,
		loc:    webi18n.Printer(),
		policy: policy,
		tracer: otel.Tracer(),
		locks:  newProfileLocks(),
	}

	mux := http.NewServeMux()
	mux.Handle(http.MethodGet+" "+routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS))))
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(routepath.Health, httpx.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc(http.MethodPost+" "+routepath.APIGrade, h.handleAPIGrade)
	mux.HandleFunc(routepath.APIGrade, httpx.MethodNotAllowed(http.MethodPost))

	app := http.NewServeMux()
	app.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleCalculator)
	app.Handle(http.MethodPost+" "+routepath.Marks, h.sameOrigin(http.HandlerFunc(h.handleMarks)))
	app.HandleFunc(routepath.Marks, httpx.MethodNotAllowed(http.MethodPost))
	app.Handle(http.MethodPost+" "+routepath.Calculate, h.sameOrigin(http.HandlerFunc(h.handleCalculate)))
	app.HandleFunc(routepath.Calculate, httpx.MethodNotAllowed(http.MethodPost))
	app.HandleFunc(http.MethodGet+" "+routepath.Score, h.handleScore)
	app.HandleFunc(routepath.Root, h.handleNotFound)
	mux.Handle(routepath.Root, profiles.Middleware()(app))

	return httpx.Chain(mux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), nil
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteErrorPage(w, r, http.StatusNotFound, h.loc)
}

// sameOrigin rejects form posts that carry a foreign Origin or Referer.
func (h *handler) sameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestmeta.CrossOrigin(r, h.policy) {
			h.writeError(w, r, apperrors.EK(apperrors.KindForbidden, "web.error.cross_origin", "cross-origin request"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteError(w, r, err, h.loc)
}
