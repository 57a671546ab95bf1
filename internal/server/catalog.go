package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/Victamina15/billtracky-2/internal/catalog/domain"
)

func (s *Server) ListCategories(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	resp, err := s.catalogSvc.ListCategories(c.Request.Context(), activeOnly)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

func (s *Server) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreateCategory(c.Request.Context(), catalogdomain.CreateCategoryRequest{
		Name:        strings.TrimSpace(req.Name),
		Color:       strings.TrimSpace(req.Color),
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListServices(c *gin.Context) {
	req := catalogdomain.ListServicesRequest{
		CategoryID: strings.TrimSpace(c.Query("category")),
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		req.Active = &active
	}

	resp, err := s.catalogSvc.ListServices(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createServiceRequest struct {
	CategoryID       string          `json:"category_id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	Unit             string          `json:"unit"`
	Description      *string         `json:"description"`
	EstimatedMinutes *int            `json:"estimated_minutes"`
}

func (s *Server) CreateService(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreateService(c.Request.Context(), catalogdomain.CreateServiceRequest{
		CategoryID:       strings.TrimSpace(req.CategoryID),
		Name:             strings.TrimSpace(req.Name),
		Price:            req.Price,
		Unit:             catalogdomain.Unit(req.Unit),
		Description:      req.Description,
		EstimatedMinutes: req.EstimatedMinutes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetService(c *gin.Context) {
	resp, err := s.catalogSvc.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateServiceRequest struct {
	CategoryID       *string          `json:"category_id"`
	Name             *string          `json:"name"`
	Price            *decimal.Decimal `json:"price"`
	Unit             *string          `json:"unit"`
	Description      *string          `json:"description"`
	EstimatedMinutes *int             `json:"estimated_minutes"`
}

func (s *Server) UpdateService(c *gin.Context) {
	var req updateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := catalogdomain.UpdateServiceRequest{
		ID:               c.Param("id"),
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Price:            req.Price,
		Description:      req.Description,
		EstimatedMinutes: req.EstimatedMinutes,
	}
	if req.Unit != nil {
		unit := catalogdomain.Unit(*req.Unit)
		update.Unit = &unit
	}

	resp, err := s.catalogSvc.UpdateService(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteService(c *gin.Context) {
	if err := s.catalogSvc.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) ToggleService(c *gin.Context) {
	resp, err := s.catalogSvc.ToggleService(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
