package delivery

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	authDelivery "rentit-backend/internal/auth/delivery"
	"rentit-backend/internal/product/dto"
	"rentit-backend/internal/product/usecase"
	"rentit-backend/pkg/apperror"
	"rentit-backend/pkg/response"
	"rentit-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

// multipart framing and text fields on top of the image itself
const formOverheadBytes = 1 << 20

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	maxImageBytes  int64
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productUsecase usecase.ProductUsecase, maxImageBytes int64) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		maxImageBytes:  maxImageBytes,
	}
}

// GetAllProducts returns every listing
// GET /api/v1/products/all
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	products, err := h.productUsecase.GetAllProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.NewProductResponses(products), "Products fetched successfully")
}

// GetProduct returns a single listing
// GET /api/v1/products/get/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productUsecase.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.NewProductResponse(product), "Product fetched successfully")
}

// GetMyProducts returns the listings of the authenticated user
// GET /api/v1/products/my-products
func (h *ProductHandler) GetMyProducts(c *gin.Context) {
	user, ok := authDelivery.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Unauthorized request"))
		return
	}

	products, err := h.productUsecase.GetUserProducts(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.NewProductResponses(products), "User products fetched successfully")
}

// CreateProduct creates a listing from a multipart form with an image file
// POST /api/v1/products/create
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	user, ok := authDelivery.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Unauthorized request"))
		return
	}

	if h.maxImageBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImageBytes+formOverheadBytes)
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(c, apperror.BadRequest("Image is too large"))
			return
		}
		response.BindError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, apperror.BadRequest("Product image is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperror.BadRequest("Product image is required"))
		return
	}
	defer file.Close()

	image, err := sniffImage(fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		response.Error(c, apperror.BadRequest("Failed to read product image"))
		return
	}

	product, err := h.productUsecase.CreateProduct(c.Request.Context(), user.ID, &req, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, dto.NewProductResponse(product), "Product created successfully")
}

// UpdateProduct updates the whitelisted fields of a listing
// PUT /api/v1/products/update/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	user, ok := authDelivery.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Unauthorized request"))
		return
	}

	var req dto.UpdateProductRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			response.Error(c, apperror.BadRequest("No fields to update"))
			return
		}
		response.Error(c, apperror.BadRequest("Invalid request data", err.Error()))
		return
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		response.Error(c, apperror.BadRequest("Invalid request data", "body must contain a single JSON object"))
		return
	}

	product, err := h.productUsecase.UpdateProduct(c.Request.Context(), c.Param("id"), user.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.NewProductResponse(product), "Product updated successfully")
}

// DeleteProduct permanently removes a listing
// DELETE /api/v1/products/delete/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	user, ok := authDelivery.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Unauthorized request"))
		return
	}

	if err := h.productUsecase.DeleteProduct(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{}, "Product deleted successfully")
}

// ToggleProduct flips the availability of a listing
// PUT /api/v1/products/toggle/:id
func (h *ProductHandler) ToggleProduct(c *gin.Context) {
	user, ok := authDelivery.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Unauthorized request"))
		return
	}

	product, err := h.productUsecase.ToggleProduct(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.NewProductResponse(product), "Product availability updated")
}

// sniffImage detects the content type from the file bytes; the client's
// Content-Type header is ignored.
func sniffImage(filename string, size int64, r io.Reader) (*storage.Image, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]

	return &storage.Image{
		Filename:    filename,
		ContentType: http.DetectContentType(head),
		Size:        size,
		Reader:      io.MultiReader(bytes.NewReader(head), r),
	}, nil
}
