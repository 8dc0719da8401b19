package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ExportCSV(c *gin.Context) {
	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	artifact, err := s.exportSvc.CSV(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", artifact.FileName))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

func (s *Server) ExportPDF(c *gin.Context) {
	query, err := parseReportQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	artifact, err := s.exportSvc.PDF(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", artifact.FileName))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
