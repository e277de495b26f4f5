// Package devserver is a local stand-in for the shelter backend. It
// implements the auth contract (login, rotating refresh, who-am-I, logout)
// and seeded CRUD resource endpoints so the clients in this repo can be
// developed and integration-tested without the real API.
package devserver

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"shelterhub/config"
)

const (
	userIDKey = "user_id"
	orgIDKey  = "organization_id"
)

// Server is the development stub server.
type Server struct {
	store  *Store
	tokens *tokenIssuer
	engine *gin.Engine
	logger *slog.Logger
}

// New creates a stub server with seeded data.
func New(auth config.AuthConfig, logger *slog.Logger) (*Server, error) {
	store := NewStore()
	if err := store.Seed(); err != nil {
		return nil, err
	}

	server := &Server{
		store: store,
		tokens: newTokenIssuer(
			auth.JWTSecret,
			time.Duration(auth.AccessTTLSecs)*time.Second,
			time.Duration(auth.RefreshTTLHours)*time.Hour,
		),
		logger: logger.With("component", "devserver"),
	}
	server.engine = server.buildRouter()

	return server, nil
}

// Handler returns the HTTP handler, for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP listener.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "UP",
			"service": "shelterhub-dev",
		})
	})

	router.POST("/auth/login", s.handleLogin)
	router.POST("/auth/refresh", s.handleRefresh)

	authed := router.Group("/")
	authed.Use(s.bearerAuth())
	{
		authed.GET("/auth/me", s.handleMe)
		authed.POST("/auth/logout", s.handleLogout)

		authed.GET("/animals", s.handleListAnimals)
		authed.POST("/animals", s.handleCreateAnimal)
		authed.GET("/animals/:id", s.handleGetAnimal)
		authed.PATCH("/animals/:id", s.handleUpdateAnimal)
		authed.DELETE("/animals/:id", s.handleDeleteAnimal)

		authed.GET("/kennels", s.handleListKennels)
		authed.POST("/kennels", s.handleCreateKennel)
		authed.GET("/kennels/:id", s.handleGetKennel)
		authed.PATCH("/kennels/:id", s.handleUpdateKennel)

		authed.GET("/tasks", s.handleListTasks)
		authed.POST("/tasks", s.handleCreateTask)
		authed.GET("/tasks/:id", s.handleGetTask)
		authed.PATCH("/tasks/:id", s.handleUpdateTask)

		authed.GET("/feeding-plans", s.handleListFeedingPlans)
		authed.POST("/feeding-plans", s.handleCreateFeedingPlan)
		authed.GET("/feeding-plans/:id", s.handleGetFeedingPlan)
		authed.PATCH("/feeding-plans/:id", s.handleUpdateFeedingPlan)

		authed.GET("/hotel-reservations", s.handleListReservations)
		authed.POST("/hotel-reservations", s.handleCreateReservation)
		authed.GET("/hotel-reservations/:id", s.handleGetReservation)
		authed.PATCH("/hotel-reservations/:id", s.handleUpdateReservation)

		authed.GET("/medical-records", s.handleListMedicalRecords)
		authed.POST("/medical-records", s.handleCreateMedicalRecord)
		authed.GET("/medical-records/:id", s.handleGetMedicalRecord)
	}

	return router
}

// bearerAuth validates the access token and the optional organization
// header, and puts both ids on the request context.
func (s *Server) bearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
				"code":  "AUTH_REQUIRED",
			})
			c.Abort()
			return
		}

		userID, err := s.tokens.Verify(strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
				"code":  "INVALID_TOKEN",
			})
			c.Abort()
			return
		}

		user := s.store.FindUserByID(userID)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unknown user",
				"code":  "INVALID_TOKEN",
			})
			c.Abort()
			return
		}

		if orgID := c.GetHeader("X-Organization-ID"); orgID != "" {
			member := false
			for _, m := range user.Memberships {
				if m.OrganizationID == orgID {
					member = true
					break
				}
			}
			if !member {
				c.JSON(http.StatusForbidden, gin.H{
					"error": "Not a member of this organization",
					"code":  "NOT_A_MEMBER",
				})
				c.Abort()
				return
			}
			c.Set(orgIDKey, orgID)
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
			"code":  "INVALID_BODY",
		})
		return
	}

	user := s.store.FindUser(req.Email)
	if user == nil || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid email or password",
			"code":  "INVALID_CREDENTIALS",
		})
		return
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		s.logger.Error("failed to issue tokens", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to issue tokens",
			"code":  "TOKEN_ISSUE_FAILED",
		})
		return
	}

	s.logger.Info("login", "user_id", user.ID)
	c.JSON(http.StatusOK, pair)
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "refresh_token is required",
			"code":  "INVALID_BODY",
		})
		return
	}

	pair, err := s.tokens.Rotate(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired refresh token",
			"code":  "INVALID_REFRESH_TOKEN",
		})
		return
	}

	c.JSON(http.StatusOK, pair)
}

func (s *Server) handleMe(c *gin.Context) {
	user := s.store.FindUserByID(c.GetString(userIDKey))
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Unknown user",
			"code":  "INVALID_TOKEN",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        user.User,
		"memberships": user.Memberships,
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	s.tokens.Revoke(c.GetString(userIDKey))
	c.Status(http.StatusNoContent)
}
