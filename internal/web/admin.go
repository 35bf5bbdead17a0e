package web

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	adminCookie = "admin_token"
	recentLimit = 50
)

// GenerateAdminToken returns a random 64-character hex token.
func GenerateAdminToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// adminAuth accepts the token as a bearer header or the admin_token cookie.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || token == c.GetHeader("Authorization") {
			token, _ = c.Cookie(adminCookie)
		}
		if s.opts.AdminToken == "" || token == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(s.opts.AdminToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func (s *Server) requireLedger(c *gin.Context) {
	if s.deps.Ledger == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "visit ledger disabled"})
		return
	}
	c.Next()
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(s.adminAuth(), s.requireLedger)

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.deps.Ledger.Stats(c.Request.Context(), recentLimit)
		if err != nil {
			s.log.Error("loading admin stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.deps.Ledger.Stats(c.Request.Context(), recentLimit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=visit-stats.json")
		s.log.Info("admin stats exported", zap.String("by", s.deps.Ledger.HashIP(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/prune", func(c *gin.Context) {
		removed, err := s.deps.Ledger.Prune(c.Request.Context(), s.opts.Retention)
		if err != nil {
			s.log.Error("privacy cleanup", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	})
}
