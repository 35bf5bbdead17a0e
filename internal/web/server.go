package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/sections"
	"github.com/Zachkp/portfolio/internal/visits"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Deps are the collaborators the server renders and records with. Tracker,
// Ledger, Mailer and MCP are optional.
type Deps struct {
	Store   *content.Store
	Builder *sections.Builder
	Tracker *visits.Tracker
	Ledger  *visits.Ledger
	Mailer  *contact.Mailer
	MCP     http.Handler
	Log     *zap.Logger
}

// Options are the knobs that come from configuration.
type Options struct {
	Mode           string
	AdminToken     string
	TypingSpeed    time.Duration
	Retention      time.Duration
	AllowedOrigins []string
}

type Server struct {
	deps       Deps
	opts       Options
	log        *zap.Logger
	tmpl       *template.Template
	engine     *gin.Engine
	httpServer *http.Server
}

// New parses the embedded templates and wires the routes.
func New(deps Deps, opts Options) (*Server, error) {
	if deps.Store == nil {
		return nil, errors.New("web: content store is required")
	}
	if deps.Builder == nil {
		deps.Builder = sections.NewBuilder(nil)
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		deps: deps,
		opts: opts,
		log:  deps.Log,
		tmpl: tmpl,
	}
	s.engine = s.buildEngine()
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) buildEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.log))
	r.SetHTMLTemplate(s.tmpl)

	static, _ := fs.Sub(staticFS, "static")
	r.StaticFS("/static", http.FS(static))

	r.GET("/", s.home)

	// HTMX fragments
	r.GET("/fragments/projects", s.projectsFragment)
	r.GET("/fragments/experience", s.experienceFragment)
	r.GET("/fragments/experience/close", s.experienceClose)
	r.GET("/fragments/visits", s.visitsFragment)
	r.GET("/stream/typewriter", s.typewriterStream)

	r.POST("/contact", s.submitContact)

	api := r.Group("/api")
	api.GET("/content", s.apiContent)
	api.GET("/projects", s.apiProjects)

	s.setupAdminRoutes(r)

	if s.deps.MCP != nil {
		h := gin.WrapH(s.deps.MCP)
		r.POST("/mcp", h)
		r.GET("/mcp", h)
		r.DELETE("/mcp", h)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// Handler is the full HTTP handler including CORS.
func (s *Server) Handler() http.Handler {
	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "HX-Request", "HX-Target", "HX-Current-URL"},
		MaxAge:         300,
	})(s.engine)
}

// Start listens on addr until Shutdown is called. After Shutdown it returns
// immediately without listening.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	s.log.Info("server starting", zap.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// RenderPage writes the full page as a self-contained document, the way the
// build command exports it. Interactive endpoints are not referenced.
func (s *Server) RenderPage(w io.Writer) error {
	page := s.deps.Builder.Compose(s.deps.Store.Document(), sections.State{Visits: visits.Failed()})
	return s.tmpl.ExecuteTemplate(w, "index", pageView{Page: page, Static: true})
}

// StaticFiles are the assets served under /static.
func StaticFiles() fs.FS {
	sub, _ := fs.Sub(staticFS, "static")
	return sub
}
