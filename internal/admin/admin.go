// Package admin is the back-office console. It runs on its own port,
// speaks the same JWT scheme as the public API, and only accepts admin
// accounts.
package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Lazycharm/Careerpilot-sub001/internal/auth"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/setting"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/usage"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/user"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
)

// Console serves the admin back-office routes
type Console struct {
	settings  setting.Service
	usage     usage.Service
	jwtSecret string
	logger    *logger.Logger
}

// New creates a new admin console
func New(settings setting.Service, u usage.Service, jwtSecret string, log *logger.Logger) *Console {
	return &Console{
		settings:  settings,
		usage:     u,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

// Router builds the gin engine with all console routes registered
func (a *Console) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := r.Group("/", a.requireAdmin())
	{
		authed.GET("/settings", a.listSettings)
		authed.PUT("/settings/:key", a.updateSetting)
		authed.POST("/settings/initialize", a.initializeDefaults)

		authed.GET("/usage/near-limit", a.nearLimit)
		authed.POST("/usage/:id/reset", a.resetUsage)
	}

	return r
}

func (a *Console) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := auth.ParseClaims(parts[1], a.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if claims.Role != user.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Set("adminID", claims.UserID)
		c.Next()
	}
}

func (a *Console) listSettings(c *gin.Context) {
	settings, err := a.settings.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

type updateSettingRequest struct {
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
}

func (a *Console) updateSetting(c *gin.Context) {
	var req updateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	adminID := c.GetInt64("adminID")
	key := c.Param("key")

	if err := a.settings.Set(c.Request.Context(), key, req.Value, req.Description, adminID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	a.logger.WithFields(map[string]interface{}{
		"key":      key,
		"admin_id": adminID,
	}).Info("Setting updated via console")

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (a *Console) initializeDefaults(c *gin.Context) {
	adminID := c.GetInt64("adminID")

	if err := a.settings.InitializeDefaults(c.Request.Context(), adminID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func (a *Console) nearLimit(c *gin.Context) {
	summaries, err := a.usage.NearLimit(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if summaries == nil {
		summaries = []*usage.Summary{}
	}
	c.JSON(http.StatusOK, summaries)
}

func (a *Console) resetUsage(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := a.usage.ResetCurrentMonth(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
