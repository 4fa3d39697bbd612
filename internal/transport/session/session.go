package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alanyang/dogs/internal/domain/route"
	"github.com/alanyang/dogs/internal/service/screen"
	sessionsvc "github.com/alanyang/dogs/internal/service/session"
)

func Register(rg *gin.RouterGroup, mgr *sessionsvc.Manager) {
	rg.POST("", createSession(mgr))
	rg.GET("/:id", getSession(mgr))
	rg.POST("/:id/events", sendEvent(mgr))
	rg.POST("/:id/navigate", navigate(mgr))
	rg.DELETE("/:id", closeSession(mgr))
	rg.GET("/:id/stream", streamSession(mgr))
}

type frameResp struct {
	ID    uuid.UUID `json:"id"`
	Route string    `json:"route"`
	Depth int       `json:"depth"`
	View  any       `json:"view,omitempty"`
}

type navigateReq struct {
	Route string `json:"route" binding:"required"`
}

func createSession(mgr *sessionsvc.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := mgr.Create(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, frameResp{ID: s.ID(), Route: s.Route().ID(), Depth: s.Depth()})
	}
}

func getSession(mgr *sessionsvc.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lookup(c, mgr)
		if !ok {
			return
		}
		f := s.Frame()
		c.JSON(http.StatusOK, frameResp{ID: s.ID(), Route: f.Route, Depth: s.Depth(), View: f.View})
	}
}

func sendEvent(mgr *sessionsvc.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lookup(c, mgr)
		if !ok {
			return
		}

		var req screen.RawEvent
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := s.Send(c.Request.Context(), req); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, frameResp{ID: s.ID(), Route: s.Route().ID(), Depth: s.Depth()})
	}
}

// navigate applies a route id such as "BreedPhotos/hound" or "Back" the same way
// a screen would, so deep links and external agents share the screens' rules.
func navigate(mgr *sessionsvc.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lookup(c, mgr)
		if !ok {
			return
		}

		var req navigateReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		r, err := route.Parse(req.Route)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		s.Navigate(c.Request.Context(), r)
		c.JSON(http.StatusAccepted, frameResp{ID: s.ID(), Route: s.Route().ID(), Depth: s.Depth()})
	}
}

func closeSession(mgr *sessionsvc.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
			return
		}
		if err := mgr.Close(c.Request.Context(), id); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func lookup(c *gin.Context, mgr *sessionsvc.Manager) (*sessionsvc.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, false
	}
	s, err := mgr.Get(id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return nil, false
	}
	return s, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sessionsvc.ErrNotFound), errors.Is(err, screen.ErrClosed):
		return http.StatusNotFound
	case errors.Is(err, screen.ErrUnknownEvent), errors.Is(err, screen.ErrInvalidEvent):
		return http.StatusBadRequest
	case errors.Is(err, screen.ErrRefreshInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
