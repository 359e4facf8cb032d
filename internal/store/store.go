package store

import (
	"errors"
	"fmt"

	"uploader/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is the normal miss result for point lookups. Callers decide
// whether a miss is fatal to the item they are processing.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err is a plain lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Store is the data access layer for the CMS-side tables. It is stateless
// and safe to share across handler invocations.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// TermRecord joins a term with its taxonomy row.
type TermRecord struct {
	TermID         int64
	TermTaxonomyID int64
	Name           string
	Slug           string
	Taxonomy       string
	Description    string
}

func (s *Store) termQuery(taxonomy string) *gorm.DB {
	return s.db.Table("terms").
		Select("terms.id AS term_id, terms.name, terms.slug, term_taxonomy.id AS term_taxonomy_id, term_taxonomy.taxonomy, term_taxonomy.description").
		Joins("JOIN term_taxonomy ON term_taxonomy.term_id = terms.id").
		Where("term_taxonomy.taxonomy = ?", taxonomy)
}

func (s *Store) TermBySlug(taxonomy, slug string) (*TermRecord, error) {
	var rec TermRecord
	err := s.termQuery(taxonomy).Where("terms.slug = ?", slug).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("term lookup %s/%s: %w", taxonomy, slug, err)
	}
	return &rec, nil
}

func (s *Store) TermByName(taxonomy, name string) (*TermRecord, error) {
	var rec TermRecord
	err := s.termQuery(taxonomy).Where("terms.name = ?", name).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("term lookup %s/%q: %w", taxonomy, name, err)
	}
	return &rec, nil
}

// TermsByTaxonomy lists every term of a taxonomy with its slug, the listing
// the resolver exposes for existence checks.
func (s *Store) TermsByTaxonomy(taxonomy string) ([]TermRecord, error) {
	var recs []TermRecord
	if err := s.termQuery(taxonomy).Order("terms.id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("term listing %s: %w", taxonomy, err)
	}
	return recs, nil
}

func (s *Store) InsertTerm(taxonomy, name, slug, description string) (*TermRecord, error) {
	term := models.Term{Name: name, Slug: slug}
	if err := s.db.Create(&term).Error; err != nil {
		return nil, fmt.Errorf("insert term %q: %w", slug, err)
	}
	tax := models.TermTaxonomy{TermID: term.ID, Taxonomy: taxonomy, Description: description}
	if err := s.db.Create(&tax).Error; err != nil {
		return nil, fmt.Errorf("insert term taxonomy %q: %w", slug, err)
	}
	return &TermRecord{
		TermID:         term.ID,
		TermTaxonomyID: tax.ID,
		Name:           name,
		Slug:           slug,
		Taxonomy:       taxonomy,
		Description:    description,
	}, nil
}

func (s *Store) UpdateTerm(termID int64, taxonomy, name, slug, description string) error {
	updates := map[string]interface{}{"name": name}
	if slug != "" {
		updates["slug"] = slug
	}
	if err := s.db.Model(&models.Term{}).Where("id = ?", termID).Updates(updates).Error; err != nil {
		return fmt.Errorf("update term %d: %w", termID, err)
	}
	err := s.db.Model(&models.TermTaxonomy{}).
		Where("term_id = ? AND taxonomy = ?", termID, taxonomy).
		Update("description", description).Error
	if err != nil {
		return fmt.Errorf("update term taxonomy %d: %w", termID, err)
	}
	return nil
}

// RewriteTermOrder replaces the term's order metadata: any existing order
// rows are deleted first, then exactly one row with the new value is kept.
func (s *Store) RewriteTermOrder(termID int64, order int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("term_id = ? AND meta_key LIKE ?", termID, "order%").
			Delete(&models.TermMeta{}).Error; err != nil {
			return fmt.Errorf("clear term order %d: %w", termID, err)
		}
		meta := models.TermMeta{TermID: termID, Key: "order", Value: fmt.Sprintf("%d", order)}
		if err := tx.Create(&meta).Error; err != nil {
			return fmt.Errorf("write term order %d: %w", termID, err)
		}
		return nil
	})
}

func (s *Store) TermOrder(termID int64) ([]models.TermMeta, error) {
	var rows []models.TermMeta
	err := s.db.Where("term_id = ? AND meta_key LIKE ?", termID, "order%").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("read term order %d: %w", termID, err)
	}
	return rows, nil
}

const colorMetaKey = "product_attribute_color"

// SetTermColor upserts the color extension row for an attribute term.
func (s *Store) SetTermColor(termID int64, hexCode string) error {
	var row models.TermColor
	err := s.db.Where("term_id = ? AND meta_key = ?", termID, colorMetaKey).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.TermColor{TermID: termID, Key: colorMetaKey, Value: hexCode}
		if err := s.db.Create(&row).Error; err != nil {
			return fmt.Errorf("insert term color %d: %w", termID, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read term color %d: %w", termID, err)
	}
	row.Value = hexCode
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("update term color %d: %w", termID, err)
	}
	return nil
}

func (s *Store) TermColor(termID int64) (string, error) {
	var row models.TermColor
	err := s.db.Where("term_id = ? AND meta_key = ?", termID, colorMetaKey).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read term color %d: %w", termID, err)
	}
	return row.Value, nil
}

func (s *Store) UpsertTermSEO(termID int64, taxonomy string, seo models.SEOData) error {
	var row models.TermSEO
	err := s.db.Where("term_id = ? AND taxonomy = ?", termID, taxonomy).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.TermSEO{
			TermID:       termID,
			Taxonomy:     taxonomy,
			FocusKeyword: seo.FocusKeyword,
			Description:  seo.Description,
		}
		if err := s.db.Create(&row).Error; err != nil {
			return fmt.Errorf("insert term seo %d: %w", termID, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read term seo %d: %w", termID, err)
	}
	row.FocusKeyword = seo.FocusKeyword
	row.Description = seo.Description
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("update term seo %d: %w", termID, err)
	}
	return nil
}

func (s *Store) AttachmentByFileName(name string) (*models.Attachment, error) {
	var a models.Attachment
	err := s.db.Where("file_name = ?", name).Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("attachment lookup %q: %w", name, err)
	}
	return &a, nil
}

func (s *Store) AttachmentByID(id int64) (*models.Attachment, error) {
	var a models.Attachment
	err := s.db.Where("id = ?", id).Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("attachment lookup %d: %w", id, err)
	}
	return &a, nil
}

func (s *Store) Attachments() ([]models.Attachment, error) {
	var list []models.Attachment
	if err := s.db.Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("attachment listing: %w", err)
	}
	return list, nil
}

// SaveAttachment creates or updates an attachment row.
func (s *Store) SaveAttachment(a *models.Attachment) error {
	if err := s.db.Save(a).Error; err != nil {
		return fmt.Errorf("save attachment %q: %w", a.FileName, err)
	}
	return nil
}

func (s *Store) RecordSyncFailure(f *models.SyncFailure) error {
	if err := s.db.Create(f).Error; err != nil {
		return fmt.Errorf("record sync failure: %w", err)
	}
	return nil
}
