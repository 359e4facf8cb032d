package handlers

import (
	"net/http"

	"uploader/internal/events"
	"uploader/internal/models"
	"uploader/internal/sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UploadHandler owns the POST side: it parses the batch envelope, hands
// the items to the right batch handler and reports per-item results with
// the aggregate status code.
type UploadHandler struct {
	syncer    *sync.Syncer
	publisher *events.Publisher
	log       *logrus.Entry
}

func NewUploadHandler(syncer *sync.Syncer, publisher *events.Publisher, log *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		syncer:    syncer,
		publisher: publisher,
		log:       log.WithField("component", "upload"),
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
}

func (h *UploadHandler) respond(c *gin.Context, entity string, batch *models.BatchResult, status int) {
	h.publisher.BatchCompleted(c.Request.Context(), entity, batch)
	if failed := batch.Failed(); failed > 0 {
		h.log.WithFields(logrus.Fields{
			"entity": entity,
			"failed": failed,
			"total":  len(batch.Items),
		}).Warn("Batch completed with failures")
	}
	c.JSON(status, batch.Items)
}

func (h *UploadHandler) Products(c *gin.Context) {
	var req struct {
		Items []models.ProductItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	batch := h.syncer.Products(c.Request.Context(), req.Items)
	h.respond(c, "product", batch, batch.StatusCode())
}

func (h *UploadHandler) Variations(c *gin.Context) {
	var req struct {
		Items []models.VariationBatch `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	batch := h.syncer.Variations(c.Request.Context(), req.Items)
	h.respond(c, "variation", batch, batch.StatusCode())
}

func (h *UploadHandler) Attributes(c *gin.Context) {
	var req struct {
		Items []models.AttributeItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	batch := h.syncer.Attributes(c.Request.Context(), req.Items)
	h.respond(c, "attribute", batch, batch.StatusCode())
}

func (h *UploadHandler) Terms(c *gin.Context) {
	var req struct {
		Items []models.TermItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	batch := h.syncer.Terms(c.Request.Context(), req.Items)
	h.respond(c, "term", batch, batch.StatusCode())
}

func (h *UploadHandler) Categories(c *gin.Context) {
	var req struct {
		Items []models.TaxonomyItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	batch := h.syncer.Categories(req.Items)
	h.respond(c, "category", batch, batch.StatusCode())
}

func (h *UploadHandler) Tags(c *gin.Context) {
	var req struct {
		Items []models.TaxonomyItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	batch := h.syncer.Tags(req.Items)
	h.respond(c, "tag", batch, batch.StatusCode())
}

func (h *UploadHandler) Images(c *gin.Context) {
	var req struct {
		Items []models.ImageItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	batch := h.syncer.Images(req.Items)
	h.respond(c, "image", batch, batch.StatusCode())
}

func (h *UploadHandler) Menu(c *gin.Context) {
	var req struct {
		Menu *models.MenuDescriptor `json:"menu" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	batch, status := h.syncer.Menu(c.Request.Context(), req.Menu)
	h.respond(c, "menu", batch, status)
}
