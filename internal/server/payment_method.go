package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	paymentmethoddomain "github.com/Victamina15/billtracky-2/internal/paymentmethod/domain"
)

func (s *Server) ListPaymentMethods(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	resp, err := s.paymentMethodSvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createPaymentMethodRequest struct {
	Name              string           `json:"name"`
	Type              string           `json:"type"`
	Icon              string           `json:"icon"`
	RequiresReference bool             `json:"requires_reference"`
	CommissionPercent *decimal.Decimal `json:"commission_percent"`
}

func (s *Server) CreatePaymentMethod(c *gin.Context) {
	var req createPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentMethodSvc.Create(c.Request.Context(), paymentmethoddomain.CreateRequest{
		Name:              strings.TrimSpace(req.Name),
		Type:              paymentmethoddomain.Type(req.Type),
		Icon:              strings.TrimSpace(req.Icon),
		RequiresReference: req.RequiresReference,
		CommissionPercent: req.CommissionPercent,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) TogglePaymentMethod(c *gin.Context) {
	resp, err := s.paymentMethodSvc.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
