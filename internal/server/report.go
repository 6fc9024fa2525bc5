package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sehatmu/amalan/internal/rollup"
)

func (s *Server) GetPersonalProgress(c *gin.Context) {
	employeeID := strings.TrimSpace(c.Param("id"))
	monthKey := strings.TrimSpace(c.Query("month"))

	resp, err := s.reportSvc.PersonalProgress(c.Request.Context(), employeeID, monthKey)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOfficialKpi(c *gin.Context) {
	employeeID := strings.TrimSpace(c.Param("id"))
	year, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.reportSvc.OfficialKpi(c.Request.Context(), employeeID, year)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type rollupQuery struct {
	GroupBy     string   `form:"group_by"`
	Month       string   `form:"month"`
	Year        string   `form:"year"`
	EmployeeIDs []string `form:"employee_id"`
}

func (s *Server) GetRollup(c *gin.Context) {
	var query rollupQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	period := strings.TrimSpace(query.Month)
	if period == "" {
		period = strings.TrimSpace(query.Year)
	}

	employeeIDs := query.EmployeeIDs
	if len(employeeIDs) == 0 {
		// No explicit set means the whole active directory, however many
		// cursor pages that takes.
		page := maxDirectoryPage
		for {
			rows, pageInfo, err := s.directory.ListPage(c.Request.Context(), "", page)
			if err != nil {
				AbortWithError(c, err)
				return
			}
			for _, emp := range rows {
				employeeIDs = append(employeeIDs, emp.ID)
			}
			if pageInfo == nil || !pageInfo.HasMore {
				break
			}
			page.PageToken = pageInfo.NextPageToken
		}
	}

	resp, err := s.reportSvc.OrganizationalRollup(c.Request.Context(), employeeIDs, rollup.GroupBy(strings.TrimSpace(query.GroupBy)), period)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
