package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/sections"
	"github.com/Zachkp/portfolio/internal/ui"
	"github.com/Zachkp/portfolio/internal/visits"
)

// pageView is what the index template renders. Static pages carry no
// references to the fragment and stream endpoints.
type pageView struct {
	sections.Page
	Static bool
}

type contactResult struct {
	Success bool
	Message string
}

func intQuery(c *gin.Context, key string) (int, bool) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// home renders the full page. Query parameters carry the interaction state
// for clients without JavaScript.
func (s *Server) home(c *gin.Context) {
	st := sections.State{
		Category: c.Query("category"),
		Visits:   visits.Unknown(),
	}
	if i, ok := intQuery(c, "experience"); ok {
		st.Experience, st.ExperienceOpen = i, true
	}
	if i, ok := intQuery(c, "card"); ok {
		st.FocusedCard, st.CardFocused = i, true
	}

	page := s.deps.Builder.Compose(s.deps.Store.Document(), st)
	c.HTML(http.StatusOK, "index", pageView{Page: page})
}

func (s *Server) projectsFragment(c *gin.Context) {
	projects := s.deps.Builder.Projects(s.deps.Store.Document(), c.Query("category"))
	c.HTML(http.StatusOK, "projects-panel", projects)
}

func (s *Server) experienceFragment(c *gin.Context) {
	i, ok := intQuery(c, "index")
	if !ok {
		c.String(http.StatusBadRequest, "")
		return
	}
	modal := s.deps.Builder.ExperienceModal(s.deps.Store.Document(), i)
	if modal == nil {
		c.String(http.StatusNotFound, "")
		return
	}
	c.HTML(http.StatusOK, "experience-modal", modal)
}

// experienceClose swaps the modal slot back to empty; the client releases
// the scroll lock when the slot no longer holds a modal.
func (s *Server) experienceClose(c *gin.Context) {
	c.String(http.StatusOK, "")
}

func (s *Server) visitsFragment(c *gin.Context) {
	if s.deps.Tracker == nil {
		c.HTML(http.StatusOK, "visit-count", visits.Failed())
		return
	}

	out := s.deps.Tracker.Mount(c.Request.Context(), cookieSession{c: c})
	if out.Incremented {
		s.recordVisit(c)
	}
	c.HTML(http.StatusOK, "visit-count", out.Count)
}

// recordVisit writes the counted visit to the local ledger, honouring Do
// Not Track.
func (s *Server) recordVisit(c *gin.Context) {
	if s.deps.Ledger == nil || c.GetHeader("DNT") == "1" {
		return
	}
	path := "/"
	if u, err := url.Parse(c.GetHeader("HX-Current-URL")); err == nil && u.Path != "" {
		path = u.Path
	}
	if err := s.deps.Ledger.Record(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), path); err != nil {
		s.log.Error("recording visit", zap.Error(err))
	}
}

// typewriterStream sends the hero text one rune per tick as server-sent
// events. The client opens it once the hero is on screen, so the typewriter
// is revealed as soon as the stream starts; a disconnect cancels it.
func (s *Server) typewriterStream(c *gin.Context) {
	tw := ui.NewTypewriter(s.deps.Store.Document().Hero.TypingText)
	tw.Reveal()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	err := tw.Run(c.Request.Context(), s.opts.TypingSpeed, func(text string) error {
		c.SSEvent("typed", text)
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		s.log.Debug("typewriter stream ended early", zap.Error(err))
		return
	}
	c.SSEvent("done", tw.Text())
	c.Writer.Flush()
}

func (s *Server) submitContact(c *gin.Context) {
	msg := contact.Message{
		Name:    strings.TrimSpace(c.PostForm("fullName")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}

	if s.deps.Mailer == nil {
		c.HTML(http.StatusOK, "contact-result", contactResult{
			Message: "The contact form is not available right now. Please reach out by email instead.",
		})
		return
	}

	if err := s.deps.Mailer.Send(msg); err != nil {
		result := contactResult{Message: "Sorry, there was an error sending your message. Please try again later."}
		switch {
		case errors.Is(err, contact.ErrInvalid):
			result.Message = "Please fill in your name, a valid email address and a message."
		case errors.Is(err, contact.ErrNotConfigured):
			s.log.Warn("contact form submitted without SMTP credentials")
		default:
			s.log.Error("sending contact email", zap.Error(err))
		}
		c.HTML(http.StatusOK, "contact-result", result)
		return
	}

	s.log.Info("contact message sent", zap.String("from", msg.Email))
	c.HTML(http.StatusOK, "contact-result", contactResult{
		Success: true,
		Message: "Thanks for reaching out! Your message has been sent.",
	})
}

func (s *Server) apiContent(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Store.Document())
}

func (s *Server) apiProjects(c *gin.Context) {
	f := ui.NewCategoryFilter(s.deps.Store.Document().Projects)
	f.Select(c.Query("category"))
	c.JSON(http.StatusOK, gin.H{
		"active":     f.Active(),
		"categories": f.Categories(),
		"projects":   f.Visible(),
	})
}
