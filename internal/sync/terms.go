package sync

import (
	"context"
	"fmt"
	"strings"

	"uploader/internal/models"
	"uploader/internal/resolver"
	"uploader/internal/store"
	"uploader/internal/woocommerce"
)

// Terms uploads attribute terms. Terms live in the local term store under
// the taxonomy "pa_<attribute>"; the upstream API only has to know the
// attribute itself, which is why the registry is checked per item.
func (s *Syncer) Terms(ctx context.Context, items []models.TermItem) *models.BatchResult {
	batch := &models.BatchResult{}

	attrs, err := s.api.Attributes(ctx)
	if err != nil {
		keys := make([]string, len(items))
		for i := range items {
			keys[i] = items[i].Name
		}
		return errorsOut(batch, "term", keys, err.Error())
	}

	for i := range items {
		batch.Append(s.syncTerm(&items[i], attrs))
	}
	return batch
}

func (s *Syncer) syncTerm(item *models.TermItem, attrs []woocommerce.Attribute) models.ItemResult {
	fail := func(message string) models.ItemResult {
		r := models.ErrorResult("term", item.Name, message)
		r.Slug = item.Slug
		return r
	}

	if err := s.validate.Struct(item); err != nil {
		return fail(err.Error())
	}

	attrSlug := strings.ToLower(item.Attribute)
	if _, ok := resolver.AttributeIDBySlug(attrs, attrSlug); !ok {
		return fail(fmt.Sprintf("Attribute %s not found", item.Attribute))
	}
	taxonomy := models.AttributeTaxonomyPrefix + attrSlug
	elementType := "tax_" + taxonomy

	isParent := item.EnglishSlug == ""

	existing, err := s.store.TermBySlug(taxonomy, item.Slug)
	if err != nil && !store.IsNotFound(err) {
		return fail(err.Error())
	}

	var term *store.TermRecord
	action := models.ActionCreated
	if existing != nil {
		action = models.ActionModified
		if err := s.store.UpdateTerm(existing.TermID, taxonomy, item.Name, item.Slug, item.Description); err != nil {
			return fail(err.Error())
		}
		term = existing
	} else {
		term, err = s.store.InsertTerm(taxonomy, item.Name, item.Slug, item.Description)
		if err != nil {
			return fail(err.Error())
		}
	}

	if isParent {
		if err := s.linker.RegisterParent(elementType, term.TermTaxonomyID); err != nil {
			return fail(err.Error())
		}
	} else {
		parent, err := s.store.TermBySlug(taxonomy, item.EnglishSlug)
		if store.IsNotFound(err) {
			return fail(fmt.Sprintf("Term %s not found (you are trying to upload a translated term, but its default language counterpart does not exist)", item.EnglishSlug))
		}
		if err != nil {
			return fail(err.Error())
		}
		if err := s.linker.LinkChild(parent.TermTaxonomyID, term.TermTaxonomyID, item.LanguageCode, elementType); err != nil {
			return fail(err.Error())
		}
	}

	if item.MenuOrder > 0 {
		if err := s.store.RewriteTermOrder(term.TermID, item.MenuOrder); err != nil {
			return fail(err.Error())
		}
	}
	if item.Extra != nil && item.Extra.HexCode != "" {
		if err := s.store.SetTermColor(term.TermID, item.Extra.HexCode); err != nil {
			return fail(err.Error())
		}
	}

	r := models.SuccessResult("term", item.Name, action, term.TermID)
	r.Slug = item.Slug
	return r
}
