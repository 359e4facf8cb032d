package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"uploader/internal/models"
	"uploader/internal/store"
	"uploader/internal/woocommerce"
)

// Attributes uploads attribute definitions. Default-language attributes go
// to the upstream attribute API; translated attributes only localize the
// parent's label, since the attribute itself is shared across languages.
func (s *Syncer) Attributes(ctx context.Context, items []models.AttributeItem) *models.BatchResult {
	batch := &models.BatchResult{}

	attrs, err := s.api.Attributes(ctx)
	if err != nil {
		keys := make([]string, len(items))
		for i := range items {
			keys[i] = items[i].Name
		}
		return errorsOut(batch, "attribute", keys, err.Error())
	}

	bySlug := map[string]woocommerce.Attribute{}
	for _, a := range attrs {
		bySlug[strings.TrimPrefix(a.Slug, models.AttributeTaxonomyPrefix)] = a
	}

	for i := range items {
		batch.Append(s.syncAttribute(ctx, &items[i], bySlug))
	}
	return batch
}

func (s *Syncer) syncAttribute(ctx context.Context, item *models.AttributeItem, bySlug map[string]woocommerce.Attribute) models.ItemResult {
	fail := func(message string) models.ItemResult {
		r := models.ErrorResult("attribute", item.Name, message)
		r.Slug = item.Slug
		return r
	}

	if err := s.validate.Struct(item); err != nil {
		return fail(err.Error())
	}

	isParent := item.EnglishSlug == ""

	if isParent {
		if existing, ok := bySlug[item.Slug]; ok {
			entity, err := s.api.UpdateAttribute(ctx, existing.ID, item)
			if err != nil {
				return fail(err.Error())
			}
			r := models.SuccessResult("attribute", item.Name, models.ActionModified, entity.ID)
			r.Slug = item.Slug
			return r
		}
		entity, err := s.api.CreateAttribute(ctx, item)
		if err != nil {
			return fail(err.Error())
		}
		r := models.SuccessResult("attribute", item.Name, models.ActionCreated, entity.ID)
		r.Slug = item.Slug
		return r
	}

	parent, ok := bySlug[item.EnglishSlug]
	if !ok {
		return fail(fmt.Sprintf("Attribute %s not found", item.EnglishSlug))
	}

	action := models.ActionModified
	_, err := s.store.LocalizedString(parent.Name, item.LanguageCode)
	if errors.Is(err, store.ErrNotFound) {
		action = models.ActionCreated
	} else if err != nil {
		return fail(err.Error())
	}
	if err := s.store.UpsertLocalizedString(parent.Name, item.LanguageCode, item.Name); err != nil {
		return fail(err.Error())
	}

	r := models.SuccessResult("attribute", item.Name, action, parent.ID)
	r.Slug = item.Slug
	return r
}
