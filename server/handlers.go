package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plus3/wordfall/content"
	"github.com/plus3/wordfall/engine"
	"github.com/plus3/wordfall/registry"
	"github.com/samber/lo"
)

type selectRequest struct {
	List     string `json:"list" binding:"required"`
	Category *int   `json:"category" binding:"required"`
}

type categoryRequest struct {
	Category *int `json:"category" binding:"required"`
}

type modeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

type playfieldRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type hitRequest struct {
	ID string   `json:"id"`
	X  *float64 `json:"x"`
	Y  *float64 `json:"y"`
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
		"state":  s.engine.Snapshot().State.String(),
	})
}

func (s *Server) listsHandler(c *gin.Context) {
	lists := s.engine.Catalog().Lists()
	c.JSON(http.StatusOK, gin.H{"lists": lo.Map(lists, func(l content.WordList, _ int) listView { return newListView(l) })})
}

func (s *Server) stateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, newStateView(s.engine.Snapshot()))
}

func (s *Server) selectHandler(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	s.respond(c, s.engine.SelectList(req.List, *req.Category))
}

func (s *Server) categoryHandler(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	s.respond(c, s.engine.SetCategory(*req.Category))
}

func (s *Server) modeHandler(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	mode, err := content.ParseMode(req.Mode)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	s.respond(c, s.engine.SetMode(mode))
}

func (s *Server) playfieldHandler(c *gin.Context) {
	var req playfieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	s.engine.SetPlayfield(req.Width, req.Height)
	s.respond(c, nil)
}

func (s *Server) hitHandler(c *gin.Context) {
	var req hitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	var (
		id      registry.ItemId
		outcome engine.HitOutcome
	)
	switch {
	case req.ID != "":
		parsed, err := registry.ParseItemId(req.ID)
		if err != nil {
			s.badRequest(c, err)
			return
		}
		id, outcome = parsed, s.engine.HandleHit(parsed)
	case req.X != nil && req.Y != nil:
		id, outcome = s.engine.HitAt(*req.X, *req.Y)
	default:
		s.badRequest(c, errors.New("hit needs an id or x and y"))
		return
	}

	view := hitView{Outcome: outcome.String(), Score: s.engine.Snapshot().Score}
	if id != 0 {
		view.ID = id.String()
	}
	c.JSON(http.StatusOK, view)
}

// command adapts an argument-less engine command to a handler.
func (s *Server) command(fn func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.respond(c, fn())
	}
}

// respond writes the new state, or maps err to a status code.
func (s *Server) respond(c *gin.Context, err error) {
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Printf("[%s] %s %s: %v", RequestID(c.Request.Context()), c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newStateView(s.engine.Snapshot()))
}

func (s *Server) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrUnknownList):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidCategory), errors.Is(err, engine.ErrInvalidMode):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNoListSelected), errors.Is(err, engine.ErrNotActive):
		return http.StatusConflict
	case errors.Is(err, engine.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
