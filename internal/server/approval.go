package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type submitRequest struct {
	MonthKey string `json:"month_key"`
}

func (s *Server) CreateSubmission(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	sub, err := s.approvalSvc.Submit(c.Request.Context(), strings.TrimSpace(c.Param("id")), strings.TrimSpace(req.MonthKey))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sub})
}

func (s *Server) GetSubmissionStatus(c *gin.Context) {
	status, err := s.approvalSvc.Status(c.Request.Context(), strings.TrimSpace(c.Param("id")), strings.TrimSpace(c.Param("month")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": status}})
}

type reviewRequest struct {
	Reviewer string `json:"reviewer"`
	Approve  bool   `json:"approve"`
	Note     string `json:"note"`
}

func (s *Server) ReviewMentor(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	sub, err := s.approvalSvc.ReviewMentor(c.Request.Context(), strings.TrimSpace(c.Param("id")), strings.TrimSpace(c.Param("month")), req.Reviewer, req.Approve, req.Note)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sub})
}

func (s *Server) ReviewUnitHead(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	employeeID := strings.TrimSpace(c.Param("id"))
	monthKey := strings.TrimSpace(c.Param("month"))
	sub, err := s.approvalSvc.ReviewUnitHead(c.Request.Context(), employeeID, monthKey, req.Reviewer, req.Approve, req.Note)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// The decision changes which months count officially.
	if year, err := strconv.Atoi(strings.Split(monthKey, "-")[0]); err == nil {
		s.reportCache.InvalidateOfficial(employeeID, year)
	}

	c.JSON(http.StatusOK, gin.H{"data": sub})
}
