package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxinator/internal/models"
	"taxinator/internal/services"
)

// VendorHandler serves static reference data: vendor templates, supported
// roles, and ready-to-send sample payloads.
type VendorHandler struct {
	jobService services.JobServicer
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(jobService services.JobServicer) *VendorHandler {
	return &VendorHandler{jobService: jobService}
}

// ListTemplates returns the downstream vendor template catalog.
func (h *VendorHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobService.ListVendorTemplates())
}

// ListRoles returns the supported caller personas.
func (h *VendorHandler) ListRoles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"roles": models.AllRoles})
}

// SampleIngestion provides a ready-to-send sample workflow payload for
// integrators trying the API.
func (h *VendorHandler) SampleIngestion(c *gin.Context) {
	sample := gin.H{
		"tax_year":      2024,
		"vendor_source": "demo_cost_basis_vendor",
		"vendor_target": "fis",
		"cost_basis": []gin.H{
			{
				"transaction_id":   "TX-1001",
				"account_id":       "ACC-001",
				"asset_symbol":     "AAPL",
				"quantity":         "10",
				"cost_basis":       "1200.00",
				"proceeds":         "1500.00",
				"acquisition_date": "2023-01-10",
				"disposition_date": "2023-09-20",
				"lot_method":       "FIFO",
				"memo":             "exercise + sell",
			},
			{
				"transaction_id":   "TX-CR-1",
				"account_id":       "ACC-002",
				"asset_symbol":     "ETH",
				"quantity":         "2.5",
				"cost_basis":       "3000.00",
				"proceeds":         "2800.00",
				"acquisition_date": "2022-05-05",
				"disposition_date": "2024-03-01",
				"wallet_address":   "0xabc123",
				"lot_method":       "SpecID",
				"memo":             "crypto sale",
			},
		},
		"personal_info": []gin.H{
			{
				"customer_id": "ACC-001",
				"tin":         "123-45-6789",
				"full_name":   "Jamie Example",
				"address":     "123 Market Street, SF CA",
				"email":       "jamie@example.com",
			},
			{
				"customer_id": "ACC-002",
				"tin":         "321-54-9876",
				"full_name":   "Taylor Ops",
				"address":     "500 Mission St, SF CA",
				"email":       "taylor@example.com",
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"generated_at": models.Today(),
		"payload":      sample,
	})
}
