package sync

import (
	"context"
	"fmt"

	"uploader/internal/models"
	"uploader/internal/resolver"
	"uploader/internal/woocommerce"
)

// Products uploads a batch of product descriptors: resolve every embedded
// natural key, decide create-vs-update per item, call the upstream API and
// collect one result per item in input order.
func (s *Syncer) Products(ctx context.Context, items []models.ProductItem) *models.BatchResult {
	batch := &models.BatchResult{}

	attrs, err := s.api.Attributes(ctx)
	if err != nil {
		keys := make([]string, len(items))
		for i := range items {
			keys[i] = items[i].SKU
		}
		return errorsOut(batch, "product", keys, err.Error())
	}

	for i := range items {
		batch.Append(s.syncProduct(ctx, &items[i], attrs))
	}
	return batch
}

func (s *Syncer) syncProduct(ctx context.Context, item *models.ProductItem, attrs []woocommerce.Attribute) models.ItemResult {
	sku := item.SKU
	lang := item.Lang

	fail := func(message string) models.ItemResult {
		r := models.ErrorResult("product", sku, message)
		r.Lang = lang
		return r
	}

	if err := s.validate.Struct(item); err != nil {
		return fail(err.Error())
	}

	// Reviews are always disabled on uploaded products.
	item.ReviewsAllowed = false

	isParent := lang == "" || lang == s.linker.DefaultLanguage()

	parentID, err := s.api.ProductIDBySKU(ctx, item.SKU)
	if err != nil {
		return fail(err.Error())
	}

	targetID := parentID
	isNew := parentID == 0

	if !isParent {
		if parentID == 0 {
			return fail("Parent product not found (you are trying to upload a translated product, but its default language counterpart does not exist)")
		}
		childID, err := s.resolver.TranslatedElementID(models.ElementProduct, parentID, lang)
		if err != nil && !resolver.IsNotFound(err) {
			return fail(err.Error())
		}
		isNew = childID == 0
		if childID != 0 {
			targetID = childID
		}
		// Translations must not collide on the parent's SKU.
		item.SKU = ""
		item.TranslationOf = parentID
	}

	// RESOLVING: categories, tags, attributes, images, up-/cross-sells.
	for i := range item.Categories {
		ref := &item.Categories[i]
		if ref.Slug == "" {
			continue
		}
		id, err := s.resolver.TermIDBySlug(models.TaxonomyCategory, ref.Slug)
		if resolver.IsNotFound(err) {
			return fail(fmt.Sprintf("Category %s not found", ref.Slug))
		}
		if err != nil {
			return fail(err.Error())
		}
		ref.ID = id
	}

	for i := range item.Tags {
		ref := &item.Tags[i]
		if ref.Slug == "" {
			continue
		}
		id, err := s.resolver.TermIDBySlug(models.TaxonomyTag, ref.Slug)
		if resolver.IsNotFound(err) {
			return fail(fmt.Sprintf("Tag %s not found", ref.Slug))
		}
		if err != nil {
			return fail(err.Error())
		}
		ref.ID = id
	}

	item.DefaultAttributes = nil
	for i := range item.Attributes {
		attr := &item.Attributes[i]
		id, ok := resolver.AttributeIDBySlug(attrs, attr.Slug)
		if !ok {
			return fail(fmt.Sprintf("Attribute %s not found", attr.Slug))
		}
		attr.ID = id

		// The preselected option: the explicit default when given, the
		// first option otherwise.
		if attr.HasDefault || attr.Default != "" {
			option := attr.Default
			if option == "" && len(attr.Options) > 0 {
				option = attr.Options[0]
			}
			if option != "" {
				item.DefaultAttributes = append(item.DefaultAttributes, models.DefaultAttribute{
					ID:     id,
					Option: option,
				})
			}
		}
	}

	for i := range item.Images {
		img := &item.Images[i]
		if img.Name == "" {
			continue
		}
		id, err := s.resolver.ImageIDByName(img.Name)
		if resolver.IsNotFound(err) {
			return fail(fmt.Sprintf("Image %s not found", img.Name))
		}
		if err != nil {
			return fail(err.Error())
		}
		img.ID = id
		img.Name = ""
	}

	if len(item.UpsellSKUs) > 0 {
		ids, err := s.resolver.ProductIDsForSKUs(ctx, item.UpsellSKUs)
		if err != nil {
			return fail(err.Error())
		}
		item.UpsellIDs = ids
		item.UpsellSKUs = nil
	}
	if len(item.CrossSellSKUs) > 0 {
		ids, err := s.resolver.ProductIDsForSKUs(ctx, item.CrossSellSKUs)
		if err != nil {
			return fail(err.Error())
		}
		item.CrossSellIDs = ids
		item.CrossSellSKUs = nil
	}

	// EXECUTING: create or update upstream, then keep the translation
	// group in sync with what was written.
	if isNew {
		entity, err := s.api.CreateProduct(ctx, item)
		if err != nil {
			return fail(err.Error())
		}
		if err := s.linkProduct(isParent, parentID, entity.ID, lang); err != nil {
			return fail(err.Error())
		}
		r := models.SuccessResult("product", sku, models.ActionCreated, entity.ID)
		r.Lang = lang
		return r
	}

	entity, err := s.api.UpdateProduct(ctx, targetID, item)
	if err != nil {
		return fail(err.Error())
	}
	if err := s.linkProduct(isParent, parentID, entity.ID, lang); err != nil {
		return fail(err.Error())
	}
	r := models.SuccessResult("product", sku, models.ActionModified, entity.ID)
	r.Lang = lang
	return r
}

func (s *Syncer) linkProduct(isParent bool, parentID, productID int64, lang string) error {
	if isParent {
		return s.linker.RegisterParent(models.ElementProduct, productID)
	}
	return s.linker.LinkChild(parentID, productID, lang, models.ElementProduct)
}
