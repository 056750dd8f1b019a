package handlers

import (
	"fmt"
	"net/http"
	"time"

	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportOrdersReport streams an Excel workbook with every order on the
// platform, newest first. Admins download this for offline reconciliation.
func ExportOrdersReport(c *gin.Context) {
	query := config.DB.Preload("User").Preload("Restaurant")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	xl := excelize.NewFile()
	defer xl.Close()

	sheet := "Orders"
	xl.SetSheetName("Sheet1", sheet)

	headers := []string{"Order ID", "Customer", "Restaurant", "Status", "Total", "Delivery Address", "Placed At", "Prepared At", "Delivered At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		xl.SetCellValue(sheet, cell, h)
	}

	for row, order := range orders {
		values := []interface{}{
			order.ID,
			order.User.DisplayName(),
			order.Restaurant.Name,
			string(order.Status),
			order.TotalAmount,
			order.DeliveryAddress,
			order.CreatedAt.Format("2006-01-02 15:04"),
			formatTimestamp(order.PreparedAt),
			formatTimestamp(order.DeliveredAt),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			xl.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := xl.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write report"})
	}
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
