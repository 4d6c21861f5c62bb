package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"suitemate/backend/internal/network"
	apperrors "suitemate/backend/pkg/errors"
)

type matchesResponse struct {
	UserID  int64   `json:"user_id"`
	Matches []int64 `json:"matches"`
}

type connectionResponse struct {
	UserID    int64 `json:"user_id"`
	OtherID   int64 `json:"other_id"`
	Connected bool  `json:"connected"`
}

type recordMatchRequest struct {
	User1 *network.User `json:"user1" binding:"required"`
	User2 *network.User `json:"user2" binding:"required"`
}

func (h *handlers) health(c *gin.Context) {
	mode := "request"
	if h.service.Shared() {
		mode = "shared"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "network_mode": mode})
}

func (h *handlers) matches(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ids, err := h.service.Matches(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, matchesResponse{UserID: userID, Matches: ids})
}

func (h *handlers) connection(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	otherID, ok := paramID(c, "other")
	if !ok {
		return
	}

	connected, err := h.service.Connected(c.Request.Context(), userID, otherID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, connectionResponse{UserID: userID, OtherID: otherID, Connected: connected})
}

func (h *handlers) recordMatch(c *gin.Context) {
	var req recordMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RecordMatch(c.Request.Context(), req.User1, req.User2); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "matched", "user1": req.User1.ID, "user2": req.User2.ID})
}

func (h *handlers) importNetwork(c *gin.Context) {
	semantics, err := network.ParseSemantics(c.Query("semantics"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var spec network.BatchSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	graph, err := h.service.Import(c.Request.Context(), &spec, semantics)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if c.Query("pretty") == "true" {
		c.IndentedJSON(http.StatusOK, graph)
		return
	}
	c.JSON(http.StatusOK, graph)
}

func (h *handlers) network(c *gin.Context) {
	graph, err := h.service.Graph(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	if c.Query("pretty") == "true" {
		c.IndentedJSON(http.StatusOK, graph)
		return
	}
	c.JSON(http.StatusOK, graph)
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id: " + c.Param(name)})
		return 0, false
	}
	return id, true
}

func (h *handlers) writeError(c *gin.Context, err error) {
	var (
		notFound *apperrors.ErrUserNotFound
		dup      *apperrors.ErrDuplicateUser
		invalid  *apperrors.ErrInvalidConnection
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "user_id": notFound.UserID})
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists", "user_id": dup.UserID})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A user cannot match with themselves", "user_id": invalid.UserID})
	case errors.Is(err, apperrors.ErrInvalidUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is required"})
	case apperrors.IsErrorType(err, apperrors.ErrorTypeStore):
		h.logger.Error("Store unavailable", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Match store unavailable"})
	default:
		h.logger.Error("Request failed", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
