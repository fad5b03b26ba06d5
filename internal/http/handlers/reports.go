package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/sales?start_date=&end_date=
func GetSalesReport(c *gin.Context) {
	report, err := reportService(c).BuildSalesReport(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/reports/sales/export?start_date=&end_date=
func ExportSalesReport(c *gin.Context) {
	svc := reportService(c)
	report, err := svc.BuildSalesReport(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	payload, err := svc.ExportSalesReportXLSX(report)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build spreadsheet", err)
		return
	}

	filename := fmt.Sprintf("sales-report-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}
