package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	checkoutdomain "github.com/Victamina15/billtracky-2/internal/checkout/domain"
)

func (s *Server) StartCheckoutSession(c *gin.Context) {
	resp, err := s.checkoutSvc.StartSession(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetCheckoutSession(c *gin.Context) {
	resp, err := s.checkoutSvc.View(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ClearCheckoutSession(c *gin.Context) {
	if err := s.checkoutSvc.Clear(c.Request.Context(), c.Param("sessionId")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

type addCheckoutItemRequest struct {
	ServiceID string           `json:"service_id"`
	Quantity  *decimal.Decimal `json:"quantity"`
}

func (s *Server) AddCheckoutItem(c *gin.Context) {
	var req addCheckoutItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quantity := decimal.NewFromInt(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	resp, err := s.checkoutSvc.AddItem(c.Request.Context(), c.Param("sessionId"), req.ServiceID, quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type setQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

func (s *Server) SetCheckoutItemQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.checkoutSvc.SetQuantity(c.Request.Context(), c.Param("sessionId"), c.Param("lineId"), req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) IncrementCheckoutItem(c *gin.Context) {
	resp, err := s.checkoutSvc.Increment(c.Request.Context(), c.Param("sessionId"), c.Param("lineId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DecrementCheckoutItem(c *gin.Context) {
	resp, err := s.checkoutSvc.Decrement(c.Request.Context(), c.Param("sessionId"), c.Param("lineId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveCheckoutItem(c *gin.Context) {
	resp, err := s.checkoutSvc.RemoveItem(c.Request.Context(), c.Param("sessionId"), c.Param("lineId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCheckoutHeader(c *gin.Context) {
	var req checkoutdomain.HeaderUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.checkoutSvc.UpdateHeader(c.Request.Context(), c.Param("sessionId"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type selectPaymentMethodRequest struct {
	MethodID string `json:"method_id"`
}

func (s *Server) SelectCheckoutPaymentMethod(c *gin.Context) {
	var req selectPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.checkoutSvc.SelectPaymentMethod(c.Request.Context(), c.Param("sessionId"), req.MethodID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type setReferenceRequest struct {
	Reference string `json:"reference"`
}

func (s *Server) SetCheckoutReference(c *gin.Context) {
	var req setReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.checkoutSvc.SetReference(c.Request.Context(), c.Param("sessionId"), req.Reference)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CommitCheckout(c *gin.Context) {
	resp, err := s.checkoutSvc.Commit(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}
