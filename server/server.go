// Package server exposes a fund over an HTTP JSON API.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	fund "github.com/etnz/communityfund"
	"github.com/etnz/communityfund/renderer"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RoleHeader carries the role of the caller. Missing means guest.
const RoleHeader = "X-Fund-Role"

const loggerKey = "logger"

// fundView is the response of GET /api/fund.
type fundView struct {
	fund.Projection
	Error string `json:"error,omitempty"`
}

type handler struct {
	fund *fund.Fund
}

// New creates the HTTP handler serving f.
func New(f *fund.Fund, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger.With("component", "http")))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders:    []string{"Origin", "Content-Type", RoleHeader},
		MaxAge:          12 * time.Hour,
	}))

	h := &handler{fund: f}
	r.GET("/dashboard", h.dashboard)
	api := r.Group("/api")
	{
		api.GET("/fund", h.getFund)
		api.POST("/reset", h.reset)
		records := api.Group("/records")
		records.GET("/:id", h.getRecord)
		records.POST("", h.createRecord)
		records.PATCH("/:id", h.updateRecord)
		records.DELETE("/:id", h.deleteRecord)
	}
	return r
}

// requestLogger injects a request scoped logger and logs every completed request.
func requestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		logger := base.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)
		c.Header("X-Request-ID", requestID)
		c.Set(loggerKey, logger)

		c.Next()

		logger.Info("request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

func loggerFrom(c *gin.Context) *slog.Logger {
	if l, ok := c.Get(loggerKey); ok {
		if logger, ok := l.(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}

// userFrom returns the caller. An unknown role is rejected.
func userFrom(c *gin.Context) (fund.User, error) {
	role, err := fund.ParseRole(c.GetHeader(RoleHeader))
	if err != nil {
		return fund.User{}, err
	}
	return fund.NewUser(role), nil
}

func (h *handler) getFund(c *gin.Context) {
	v := fundView{Projection: h.fund.View()}
	if v.Records == nil {
		v.Records = []fund.Record{}
	}
	if err := h.fund.Err(); err != nil {
		v.Error = err.Error()
	}
	c.JSON(http.StatusOK, v)
}

func (h *handler) dashboard(c *gin.Context) {
	md := renderer.Dashboard(h.fund.View(), renderer.DashboardOptions{})
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

func (h *handler) getRecord(c *gin.Context) {
	id := c.Param("id")
	r, ok := h.fund.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "record " + strconv.Quote(id) + " not found"})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *handler) createRecord(c *gin.Context) {
	logger := loggerFrom(c)
	user, err := userFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var d fund.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		logger.Warn("failed to bind record", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}
	r, err := h.fund.Create(c.Request.Context(), user, d)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *handler) updateRecord(c *gin.Context) {
	logger := loggerFrom(c)
	user, err := userFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var patch fund.Draft
	if err := c.ShouldBindJSON(&patch); err != nil {
		logger.Warn("failed to bind record patch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}
	r, err := h.fund.Update(c.Request.Context(), user, c.Param("id"), patch)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *handler) deleteRecord(c *gin.Context) {
	user, err := userFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var revision int64
	if s := c.Query("revision"); s != "" {
		revision, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid revision: " + err.Error()})
			return
		}
	}
	if err := h.fund.Delete(c.Request.Context(), user, c.Param("id"), revision); err != nil {
		h.fail(c, "delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) reset(c *gin.Context) {
	user, err := userFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.fund.Reset(c.Request.Context(), user); err != nil {
		h.fail(c, "reset", err)
		return
	}
	h.getFund(c)
}

// fail maps a fund error to its HTTP status.
func (h *handler) fail(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, fund.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, fund.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, fund.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, fund.ErrDraftInvalid), errors.Is(err, fund.ErrReconciliationInputInvalid):
		status = http.StatusBadRequest
	}
	logger := loggerFrom(c)
	if status == http.StatusInternalServerError {
		logger.Error("failed to "+op+" fund", slog.String("error", err.Error()))
	} else {
		logger.Warn("rejected "+op, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
