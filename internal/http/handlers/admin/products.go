package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/http/response"
	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/repository"
	"github.com/jamolstroy/admin-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListProducts returns the filtered product list with category data.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		CategoryID:    strings.TrimSpace(c.Query("category_id")),
		Search:        strings.TrimSpace(c.Query("search")),
		ProductType:   strings.TrimSpace(c.Query("product_type")),
		OnlyAvailable: c.Query("only_available") == "true",
		OnlyFeatured:  c.Query("only_featured") == "true",
		WithCategory:  true,
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetProduct returns a single product.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, product)
}

// ProductPayload is the write shape of a catalog item.
type ProductPayload struct {
	CategoryID         string   `json:"category_id" binding:"required"`
	NameUz             string   `json:"name_uz" binding:"required"`
	NameRu             string   `json:"name_ru"`
	DescriptionUz      string   `json:"description_uz"`
	DescriptionRu      string   `json:"description_ru"`
	Price              string   `json:"price" binding:"required"`
	Unit               string   `json:"unit"`
	ProductType        string   `json:"product_type"`
	RentalPricePerUnit string   `json:"rental_price_per_unit"`
	RentalTimeUnit     string   `json:"rental_time_unit"`
	Images             []string `json:"images"`
	StockQuantity      int      `json:"stock_quantity"`
	MinOrderQuantity   int      `json:"min_order_quantity"`
	IsAvailable        *bool    `json:"is_available"`
	IsFeatured         *bool    `json:"is_featured"`
	IsPopular          *bool    `json:"is_popular"`
}

func (p *ProductPayload) apply(product *models.Product) error {
	price, err := decimal.NewFromString(strings.TrimSpace(p.Price))
	if err != nil {
		return err
	}

	productType := strings.TrimSpace(p.ProductType)
	if productType == "" {
		productType = constants.ProductTypeSale
	}
	if productType != constants.ProductTypeSale && productType != constants.ProductTypeRental {
		return errors.New("unknown product type")
	}

	product.CategoryID = strings.TrimSpace(p.CategoryID)
	product.NameUz = strings.TrimSpace(p.NameUz)
	product.NameRu = strings.TrimSpace(p.NameRu)
	product.DescriptionUz = p.DescriptionUz
	product.DescriptionRu = p.DescriptionRu
	product.Price = models.NewMoneyFromDecimal(price)
	product.Unit = strings.TrimSpace(p.Unit)
	product.ProductType = productType
	product.Images = p.Images
	product.StockQuantity = p.StockQuantity
	product.MinOrderQuantity = p.MinOrderQuantity

	product.RentalPricePerUnit = nil
	product.RentalTimeUnit = ""
	if productType == constants.ProductTypeRental {
		rentalPrice, err := decimal.NewFromString(strings.TrimSpace(p.RentalPricePerUnit))
		if err != nil {
			return err
		}
		rentalUnit := strings.TrimSpace(p.RentalTimeUnit)
		switch rentalUnit {
		case constants.RentalTimeUnitHour, constants.RentalTimeUnitDay,
			constants.RentalTimeUnitWeek, constants.RentalTimeUnitMonth:
		default:
			return errors.New("unknown rental time unit")
		}
		money := models.NewMoneyFromDecimal(rentalPrice)
		product.RentalPricePerUnit = &money
		product.RentalTimeUnit = rentalUnit
	}

	if p.IsAvailable != nil {
		product.IsAvailable = *p.IsAvailable
	}
	if p.IsFeatured != nil {
		product.IsFeatured = *p.IsFeatured
	}
	if p.IsPopular != nil {
		product.IsPopular = *p.IsPopular
	}
	return nil
}

// CreateProduct adds a catalog item.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Get(strings.TrimSpace(req.CategoryID))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	product := &models.Product{IsAvailable: true}
	if err := req.apply(product); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product.CategoryID = category.ID

	if err := h.ProductService.Create(product); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, product)
}

// UpdateProduct replaces the writable fields of a catalog item.
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req ProductPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	if err := req.apply(product); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.ProductService.Update(product); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, product)
}

// ToggleRequest carries the target value of a boolean flag.
type ToggleRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// SetProductAvailability toggles whether a product is sellable.
func (h *Handler) SetProductAvailability(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.SetAvailability(c.Param("id"), *req.Value)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, product)
}

// SetProductFeatured toggles the featured flag of a product.
func (h *Handler) SetProductFeatured(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.SetFeatured(c.Param("id"), *req.Value)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, product)
}
