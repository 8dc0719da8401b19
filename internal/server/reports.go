package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/orderlens/pkg/db/pagination"
)

func (s *Server) ReportOptions(c *gin.Context) {
	resp, err := s.reportSvc.Options(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Summary(c *gin.Context) {
	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.Summary(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RFM(c *gin.Context) {
	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.RFM(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Cohorts(c *gin.Context) {
	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.Cohorts(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Churn(c *gin.Context) {
	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.Churn(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CLV(c *gin.Context) {
	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.CLV(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Intervals(c *gin.Context) {
	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.Intervals(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MonthlyCustomers(c *gin.Context) {
	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.MonthlyCustomers(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// TopProducts serves the product ranking. The configured limit caps the
// ranking size; a smaller ?limit= trims the response further.
func (s *Server) TopProducts(c *gin.Context) {
	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil || (limit != nil && *limit <= 0) {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "limit must be a positive integer"))
		return
	}

	resp, err := s.analyticsSvc.TopProducts(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if limit != nil && *limit < len(resp) {
		resp = resp[:*limit]
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Seasonality(c *gin.Context) {
	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.Seasonality(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCustomers(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows, pageInfo, err := s.analyticsSvc.Customers(c.Request.Context(), query, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows, "page_info": pageInfo})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		AbortWithError(c, newValidationError("id", "invalid_customer_id", "customer id is required"))
		return
	}

	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.Customer(c.Request.Context(), query, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
