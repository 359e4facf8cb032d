package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"uploader/internal/models"
	"uploader/internal/store"
	"uploader/internal/woocommerce"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogHandler serves the read side: thin proxies over the upstream
// catalog API plus lookups against the local media store.
type CatalogHandler struct {
	api   *woocommerce.Client
	store *store.Store
	log   *logrus.Entry
}

func NewCatalogHandler(api *woocommerce.Client, st *store.Store, log *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		api:   api,
		store: st,
		log:   log.WithField("component", "catalog"),
	}
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *CatalogHandler) proxy(c *gin.Context, raw json.RawMessage, err error) {
	if err != nil {
		h.log.WithError(err).Error("Upstream catalog request failed")
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *CatalogHandler) Attributes(c *gin.Context) {
	raw, err := h.api.AttributesRaw(c.Request.Context())
	h.proxy(c, raw, err)
}

func (h *CatalogHandler) Tags(c *gin.Context) {
	raw, err := h.api.Tags(c.Request.Context(), pageParam(c))
	h.proxy(c, raw, err)
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	raw, err := h.api.Categories(c.Request.Context(), pageParam(c))
	h.proxy(c, raw, err)
}

func (h *CatalogHandler) Products(c *gin.Context) {
	raw, err := h.api.Products(c.Request.Context(), pageParam(c))
	h.proxy(c, raw, err)
}

// Terms returns one list per attribute, in attribute order.
func (h *CatalogHandler) Terms(c *gin.Context) {
	ctx := c.Request.Context()
	page := pageParam(c)

	attrs, err := h.api.Attributes(ctx)
	if err != nil {
		h.proxy(c, nil, err)
		return
	}

	lists := make([]json.RawMessage, 0, len(attrs))
	for _, a := range attrs {
		raw, err := h.api.AttributeTermsRaw(ctx, a.ID, page)
		if err != nil {
			h.proxy(c, nil, err)
			return
		}
		lists = append(lists, raw)
	}
	c.JSON(http.StatusOK, lists)
}

func (h *CatalogHandler) Variations(c *gin.Context) {
	ctx := c.Request.Context()
	sku := c.Param("sku")

	productID, err := h.api.ProductIDBySKU(ctx, sku)
	if err != nil {
		h.proxy(c, nil, err)
		return
	}
	if productID == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Product %s not found", sku)})
		return
	}

	raw, err := h.api.Variations(ctx, productID, pageParam(c))
	h.proxy(c, raw, err)
}

func attachmentInfo(a *models.Attachment) gin.H {
	return gin.H{
		"id":   a.ID,
		"name": a.FileName,
		"url":  a.URL,
		"size": a.Size,
		"dimensions": gin.H{
			"width":  a.Width,
			"height": a.Height,
		},
	}
}

// Image returns stored image metadata by filename, or all images when no
// name is given. A missing image is not an error: callers probe before
// uploading, so the marker comes back with a 200.
func (h *CatalogHandler) Image(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		attachments, err := h.store.Attachments()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
			return
		}
		infos := make([]gin.H, 0, len(attachments))
		for i := range attachments {
			infos = append(infos, attachmentInfo(&attachments[i]))
		}
		c.JSON(http.StatusOK, infos)
		return
	}

	attachment, err := h.store.AttachmentByFileName(name)
	if store.IsNotFound(err) {
		c.JSON(http.StatusOK, gin.H{"message": "No image found.", "name": name})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, attachmentInfo(attachment))
}
