package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:waybillNo/manifest
func GetWaybillManifest(c *gin.Context) {
	waybillNo := strings.TrimSpace(c.Param("waybillNo"))
	payload, filename, err := manifestService(c).BuildManifest(waybillNo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
