package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sehatmu/amalan/pkg/db/pagination"
)

var maxDirectoryPage = pagination.Pagination{PageSize: 250}

func (s *Server) ListEmployees(c *gin.Context) {
	var query struct {
		pagination.Pagination
		UnitID string `form:"unit_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	rows, pageInfo, err := s.directory.ListPage(c.Request.Context(), strings.TrimSpace(query.UnitID), query.Pagination)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "page_info": pageInfo})
}

func (s *Server) GetEmployee(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	emp, err := s.directory.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": emp})
}
