package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server bundles dependencies for HTTP handlers.
type Server struct {
	store TaskStore
}

// NewServer creates a new API server instance.
func NewServer(store TaskStore) *Server {
	return &Server{store: store}
}

// RegisterRoutes attaches handlers to the provided Gin router group.
func (s *Server) RegisterRoutes(routes gin.IRoutes) {
	routes.POST("/scans", s.createScanHandler)
	routes.GET("/scans/:id", s.getScanHandler)
}

// @Summary      Create a new scan task
// @Description  Submits an ARP discovery pass, optionally followed by a SYN port scan, and queues it for background processing.
// @Description  **Lifecycle**: POST /scans immediately answers with HTTP 202 Accepted plus the task identifier. Clients must poll GET /scans/{id} to observe status transitions (pending -> running -> completed/failed). Discovered devices and open ports are attached only after completion.
// @Tags         Scans
// @Accept       json
// @Produce      json
// @Param        scanRequest  body      CreateScanRequest     true  "Scan request parameters"
// @Success      202          {object}  AcceptedResponse
// @Failure      400          {object}  ErrorResponse
// @Failure      401          {object}  ErrorResponse
// @Failure      429          {object}  ErrorResponse
// @Failure      500          {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /scans [post]
func (s *Server) createScanHandler(c *gin.Context) {
	var req CreateScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.ArpOnly && len(req.PortTargets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "port_targets is required unless arp_only is set"})
		return
	}

	task := &ScanTask{
		ID:               uuid.NewString(),
		Status:           "pending",
		IPTargets:        req.IPTargets,
		PortTargets:      req.PortTargets,
		ArpOnly:          req.ArpOnly,
		IncludeVendor:    req.IncludeVendor,
		IncludeHostNames: req.IncludeHostNames,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.store.CreateTask(task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist task"})
		return
	}

	if err := s.store.PushToQueue(task.ID); err != nil {
		task.Status = "failed"
		task.Error = "failed to queue task"
		now := time.Now().UTC()
		task.CompletedAt = &now
		_ = s.store.UpdateTask(task)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue task"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"id":     task.ID,
		"status": task.Status,
	})
}

// @Summary      Get scan status and results
// @Description  Retrieves the complete details of a scan task by its ID.
// @Tags         Scans
// @Produce      json
// @Param        id  path      string  true  "Scan task ID (UUID)"
// @Success      200 {object}  ScanTask
// @Failure      401 {object}  ErrorResponse
// @Failure      404 {object}  ErrorResponse
// @Failure      429 {object}  ErrorResponse
// @Failure      500 {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /scans/{id} [get]
func (s *Server) getScanHandler(c *gin.Context) {
	id := c.Param("id")
	task, err := s.store.GetTask(id)
	if err != nil {
		if err == ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// AcceptedResponse is the 202 payload for a newly queued scan.
type AcceptedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ErrorResponse wraps a human-readable error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
