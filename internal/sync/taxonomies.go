package sync

import (
	"fmt"
	"strings"

	"uploader/internal/models"
	"uploader/internal/store"
)

// Categories uploads product categories into the local term store.
func (s *Syncer) Categories(items []models.TaxonomyItem) *models.BatchResult {
	return s.syncTaxonomy(models.TaxonomyCategory, "category", items)
}

// Tags uploads product tags into the local term store.
func (s *Syncer) Tags(items []models.TaxonomyItem) *models.BatchResult {
	return s.syncTaxonomy(models.TaxonomyTag, "tag", items)
}

func (s *Syncer) syncTaxonomy(taxonomy, keyField string, items []models.TaxonomyItem) *models.BatchResult {
	batch := &models.BatchResult{}
	for i := range items {
		batch.Append(s.syncTaxonomyItem(taxonomy, keyField, &items[i]))
	}
	return batch
}

func (s *Syncer) syncTaxonomyItem(taxonomy, keyField string, item *models.TaxonomyItem) models.ItemResult {
	fail := func(message string) models.ItemResult {
		r := models.ErrorResult(keyField, item.Name, message)
		r.Slug = item.Slug
		return r
	}

	if err := s.validate.Struct(item); err != nil {
		return fail(err.Error())
	}

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
			label := strings.ToUpper(keyField[:1]) + keyField[1:]
			return fail(fmt.Sprintf("%s %s not found (you are trying to upload a translated %s, but its default language counterpart does not exist)",
				label, item.EnglishSlug, keyField))
		}
		if err != nil {
			return fail(err.Error())
		}
		if err := s.linker.LinkChild(parent.TermTaxonomyID, term.TermTaxonomyID, item.LanguageCode, elementType); err != nil {
			return fail(err.Error())
		}
	}

	if item.SEO != nil {
		if err := s.store.UpsertTermSEO(term.TermID, taxonomy, *item.SEO); err != nil {
			return fail(err.Error())
		}
	}

	r := models.SuccessResult(keyField, item.Name, action, term.TermID)
	r.Slug = item.Slug
	return r
}
