package resolver

import (
	"context"
	"errors"
	"fmt"

	"uploader/internal/models"
	"uploader/internal/store"
	"uploader/internal/woocommerce"
)

// ErrNotFound reports a miss on any lookup. It is a normal result, not a
// fault; callers decide whether it is fatal to the item they hold.
var ErrNotFound = store.ErrNotFound

// Commerce is the slice of the upstream API the resolver depends on.
type Commerce interface {
	ProductIDBySKU(ctx context.Context, sku string) (int64, error)
	Attributes(ctx context.Context) ([]woocommerce.Attribute, error)
}

// Resolver maps external identifiers (SKU, slug, filename) to internal
// entity IDs. It is stateless; every call hits the store or the upstream
// API directly.
type Resolver struct {
	store *store.Store
	api   Commerce
}

func New(st *store.Store, api Commerce) *Resolver {
	return &Resolver{store: st, api: api}
}

// TermIDBySlug resolves a taxonomy term slug to its term ID.
func (r *Resolver) TermIDBySlug(taxonomy, slug string) (int64, error) {
	rec, err := r.store.TermBySlug(taxonomy, slug)
	if err != nil {
		return 0, err
	}
	return rec.TermID, nil
}

// ProductIDBySKU resolves a SKU against the upstream catalog; 0 means the
// SKU is unknown.
func (r *Resolver) ProductIDBySKU(ctx context.Context, sku string) (int64, error) {
	return r.api.ProductIDBySKU(ctx, sku)
}

// ProductIDsForSKUs resolves a SKU list in order; unknown SKUs map to 0.
func (r *Resolver) ProductIDsForSKUs(ctx context.Context, skus []string) ([]int64, error) {
	ids := make([]int64, 0, len(skus))
	for _, sku := range skus {
		id, err := r.api.ProductIDBySKU(ctx, sku)
		if err != nil {
			return nil, fmt.Errorf("resolve sku %q: %w", sku, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ImageIDByName resolves a stored image filename to its attachment ID.
func (r *Resolver) ImageIDByName(name string) (int64, error) {
	a, err := r.store.AttachmentByFileName(name)
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

// Attributes loads the upstream attribute registry. Handlers fetch it once
// per batch and resolve slugs against the snapshot.
func (r *Resolver) Attributes(ctx context.Context) ([]woocommerce.Attribute, error) {
	return r.api.Attributes(ctx)
}

// AttributeIDBySlug resolves an attribute slug against a loaded registry
// snapshot. Upstream attribute slugs carry the taxonomy prefix.
func AttributeIDBySlug(attrs []woocommerce.Attribute, slug string) (int64, bool) {
	want := models.AttributeTaxonomyPrefix + slug
	for _, a := range attrs {
		if a.Slug == want || a.Slug == slug {
			return a.ID, true
		}
	}
	return 0, false
}

// TranslatedElementID finds the translation-group sibling of parentID in
// the given language.
func (r *Resolver) TranslatedElementID(elementType string, parentID int64, lang string) (int64, error) {
	row, err := r.store.TranslationRow(elementType, parentID)
	if err != nil {
		return 0, err
	}
	member, err := r.store.TranslationMember(elementType, row.TRID, lang)
	if err != nil {
		return 0, err
	}
	return member.ElementID, nil
}

// ListWithSlugs lists every term of a taxonomy, the resolver-side view
// used for existence checks.
func (r *Resolver) ListWithSlugs(taxonomy string) ([]store.TermRecord, error) {
	return r.store.TermsByTaxonomy(taxonomy)
}

// IsNotFound reports whether err is a plain lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
