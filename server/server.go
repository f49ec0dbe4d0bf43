package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/swiftship/courier-web/courierapi"
	"github.com/swiftship/courier-web/internal/config"
	"github.com/swiftship/courier-web/session"
)

// Server is the courier dashboard web application: public landing and
// tracking pages, auth screens, and the role-gated client and admin areas.
// All shipment and account state lives behind the remote courier API.
type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	api       *courierapi.Client
	sessions  *session.Manager
	templates *templateSet
}

func New(cfg config.Config, api *courierapi.Client, sessions *session.Manager) (*Server, error) {
	if api == nil {
		return nil, errors.New("[Server New] courier API client is required")
	}
	if sessions == nil {
		return nil, errors.New("[Server New] session manager is required")
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] parse templates")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		api:       api,
		sessions:  sessions,
		templates: templates,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
