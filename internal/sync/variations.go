package sync

import (
	"context"
	"fmt"

	"uploader/internal/models"
	"uploader/internal/resolver"
	"uploader/internal/woocommerce"
)

// Variations uploads product variations grouped by parent product. On top
// of the usual reference resolution, every attribute option is validated
// against the known terms and against the options assigned to the parent
// product; both checks fail the single variation, never the batch.
func (s *Syncer) Variations(ctx context.Context, batches []models.VariationBatch) *models.BatchResult {
	batch := &models.BatchResult{}

	attrs, err := s.api.Attributes(ctx)
	if err != nil {
		var keys []string
		for i := range batches {
			for j := range batches[i].Variations {
				keys = append(keys, batches[i].Variations[j].SKU)
			}
		}
		return errorsOut(batch, "product", keys, err.Error())
	}

	// All known option names across every attribute.
	knownTerms := map[string]bool{}
	for _, a := range attrs {
		terms, err := s.api.AttributeTerms(ctx, a.ID)
		if err != nil {
			s.log.WithError(err).WithField("attribute", a.Slug).
				Debug("skipping attribute terms fetch")
			continue
		}
		for _, t := range terms {
			knownTerms[t.Name] = true
		}
	}

	for i := range batches {
		group := &batches[i]

		parentProductID, err := s.api.ProductIDBySKU(ctx, group.ParentProductSKU)
		if err != nil {
			for j := range group.Variations {
				batch.Append(models.ErrorResult("product", group.Variations[j].SKU, err.Error()))
			}
			continue
		}

		// Option names assigned to the parent product.
		productTerms := map[string]bool{}
		if parentProductID != 0 {
			if parent, err := s.api.Product(ctx, parentProductID); err == nil {
				for _, pa := range parent.Attributes {
					for _, opt := range pa.Options {
						productTerms[opt] = true
					}
				}
			}
		}

		for j := range group.Variations {
			batch.Append(s.syncVariation(ctx, group, &group.Variations[j], parentProductID, attrs, knownTerms, productTerms))
		}
	}
	return batch
}

func (s *Syncer) syncVariation(
	ctx context.Context,
	group *models.VariationBatch,
	v *models.VariationItem,
	parentProductID int64,
	attrs []woocommerce.Attribute,
	knownTerms, productTerms map[string]bool,
) models.ItemResult {
	sku := v.SKU
	lang := v.Lang

	fail := func(message string) models.ItemResult {
		r := models.ErrorResult("product", sku, message)
		r.Lang = lang
		return r
	}

	if err := s.validate.Struct(v); err != nil {
		return fail(err.Error())
	}

	if parentProductID == 0 {
		return fail(fmt.Sprintf("Product %s not found", group.ParentProductSKU))
	}

	isParent := lang == "" || lang == s.linker.DefaultLanguage()

	// Translated variations attach to the translated parent product when
	// one exists, otherwise to the default-language product.
	targetProductID := parentProductID
	if !isParent {
		if id, err := s.resolver.TranslatedElementID(models.ElementProduct, parentProductID, lang); err == nil {
			targetProductID = id
		} else if !resolver.IsNotFound(err) {
			return fail(err.Error())
		}
	}

	parentVariationID, err := s.api.ProductIDBySKU(ctx, v.SKU)
	if err != nil {
		return fail(err.Error())
	}

	targetVariationID := parentVariationID
	isNew := parentVariationID == 0

	if !isParent {
		if parentVariationID == 0 {
			return fail("Parent variation not found (you are trying to upload a translated variation, but its default language counterpart does not exist)")
		}
		childID, err := s.resolver.TranslatedElementID(models.ElementVariation, parentVariationID, lang)
		if err != nil && !resolver.IsNotFound(err) {
			return fail(err.Error())
		}
		isNew = childID == 0
		if childID != 0 {
			targetVariationID = childID
		}
		v.SKU = ""
		v.TranslationOf = parentVariationID
	}

	for i := range v.Attributes {
		va := &v.Attributes[i]
		id, ok := resolver.AttributeIDBySlug(attrs, va.Slug)
		if !ok {
			return fail(fmt.Sprintf("Attribute %s not found", va.Slug))
		}
		if !knownTerms[va.Option] {
			return fail(fmt.Sprintf("Attribute term %s not found", va.Option))
		}
		if !productTerms[va.Option] {
			return fail(fmt.Sprintf("Attribute term %s is not defined as a term for product SKU %s", va.Option, group.ParentProductSKU))
		}
		va.ID = id
	}

	if v.Image != nil && v.Image.Name != "" {
		id, err := s.resolver.ImageIDByName(v.Image.Name)
		if resolver.IsNotFound(err) {
			return fail(fmt.Sprintf("Image %s not found", v.Image.Name))
		}
		if err != nil {
			return fail(err.Error())
		}
		v.Image.ID = id
		v.Image.Name = ""
	}

	if isNew {
		entity, err := s.api.CreateVariation(ctx, targetProductID, v)
		if err != nil {
			return fail(err.Error())
		}
		if isParent {
			err = s.linker.RegisterParent(models.ElementVariation, entity.ID)
		} else {
			err = s.linker.LinkChild(parentVariationID, entity.ID, lang, models.ElementVariation)
		}
		if err != nil {
			return fail(err.Error())
		}
		r := models.SuccessResult("product", sku, models.ActionCreated, entity.ID)
		r.Lang = lang
		return r
	}

	entity, err := s.api.UpdateVariation(ctx, targetProductID, targetVariationID, v)
	if err != nil {
		return fail(err.Error())
	}
	if isParent {
		err = s.linker.RegisterParent(models.ElementVariation, entity.ID)
	} else {
		err = s.linker.LinkChild(parentVariationID, entity.ID, lang, models.ElementVariation)
	}
	if err != nil {
		return fail(err.Error())
	}
	r := models.SuccessResult("product", sku, models.ActionModified, entity.ID)
	r.Lang = lang
	return r
}
