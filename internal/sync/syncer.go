package sync

import (
	"context"

	"uploader/internal/models"
	"uploader/internal/resolver"
	"uploader/internal/store"
	"uploader/internal/translations"
	"uploader/internal/woocommerce"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Commerce is the upstream API surface the batch handlers call. The
// concrete implementation is woocommerce.Client; tests substitute fakes.
type Commerce interface {
	ProductIDBySKU(ctx context.Context, sku string) (int64, error)
	Attributes(ctx context.Context) ([]woocommerce.Attribute, error)
	AttributeTerms(ctx context.Context, attributeID int64) ([]woocommerce.AttributeTerm, error)
	Product(ctx context.Context, id int64) (*woocommerce.Product, error)

	CreateProduct(ctx context.Context, item interface{}) (*woocommerce.Entity, error)
	UpdateProduct(ctx context.Context, id int64, item interface{}) (*woocommerce.Entity, error)
	CreateVariation(ctx context.Context, productID int64, item interface{}) (*woocommerce.Entity, error)
	UpdateVariation(ctx context.Context, productID, variationID int64, item interface{}) (*woocommerce.Entity, error)
	CreateAttribute(ctx context.Context, item interface{}) (*woocommerce.Entity, error)
	UpdateAttribute(ctx context.Context, id int64, item interface{}) (*woocommerce.Entity, error)
}

// Syncer owns the batch upload handlers. Items are processed strictly in
// input order, one at a time; every per-item failure is converted to an
// error result so a bad item never aborts the rest of its batch.
type Syncer struct {
	store     *store.Store
	api       Commerce
	resolver  *resolver.Resolver
	linker    *translations.Linker
	validate  *validator.Validate
	uploadDir string
	log       *logrus.Entry
}

func New(st *store.Store, api Commerce, linker *translations.Linker, uploadDir string, log *logrus.Logger) *Syncer {
	return &Syncer{
		store:     st,
		api:       api,
		resolver:  resolver.New(st, api),
		linker:    linker,
		validate:  validator.New(),
		uploadDir: uploadDir,
		log:       log.WithField("component", "sync"),
	}
}

// errorsOut fills a batch with the same error for every remaining item,
// used when a batch-wide dependency (the attribute registry) cannot be
// loaded at all.
func errorsOut(batch *models.BatchResult, keyField string, keys []string, message string) *models.BatchResult {
	for _, k := range keys {
		batch.Append(models.ErrorResult(keyField, k, message))
	}
	return batch
}
