package store

import (
	"errors"
	"fmt"

	"uploader/internal/models"

	"gorm.io/gorm"
)

// Translation-group rows. Every entity the system manages gets exactly one
// row per language; rows sharing a TRID form one logical entity.

func (s *Store) TranslationRow(elementType string, elementID int64) (*models.Translation, error) {
	var t models.Translation
	err := s.db.Where("element_type = ? AND element_id = ?", elementType, elementID).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("translation lookup %s/%d: %w", elementType, elementID, err)
	}
	return &t, nil
}

// TranslationMember finds the group member in the given language.
func (s *Store) TranslationMember(elementType string, trid int64, lang string) (*models.Translation, error) {
	var t models.Translation
	err := s.db.Where("element_type = ? AND trid = ? AND language_code = ?", elementType, trid, lang).
		Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("translation member lookup %s/%d/%s: %w", elementType, trid, lang, err)
	}
	return &t, nil
}

// NextTRID allocates a fresh group identifier.
func (s *Store) NextTRID() (int64, error) {
	var max int64
	err := s.db.Model(&models.Translation{}).
		Select("COALESCE(MAX(trid), 0)").Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("allocate trid: %w", err)
	}
	return max + 1, nil
}

// SaveTranslation upserts the row keyed by (element_type, element_id).
func (s *Store) SaveTranslation(t *models.Translation) error {
	existing, err := s.TranslationRow(t.ElementType, t.ElementID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		t.ID = existing.ID
	}
	if err := s.db.Save(t).Error; err != nil {
		return fmt.Errorf("save translation %s/%d: %w", t.ElementType, t.ElementID, err)
	}
	return nil
}

// EnsureTranslation registers a brand-new entity in its own translation
// group. Existing rows are left untouched.
func (s *Store) EnsureTranslation(elementType string, elementID int64, lang string) (*models.Translation, error) {
	existing, err := s.TranslationRow(elementType, elementID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	trid, err := s.NextTRID()
	if err != nil {
		return nil, err
	}
	t := models.Translation{
		ElementType:  elementType,
		ElementID:    elementID,
		TRID:         trid,
		LanguageCode: lang,
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("create translation %s/%d: %w", elementType, elementID, err)
	}
	return &t, nil
}

func (s *Store) LocalizedString(name, language string) (*models.LocalizedString, error) {
	var row models.LocalizedString
	err := s.db.Where("name = ? AND language = ?", name, language).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("localized string lookup %q/%s: %w", name, language, err)
	}
	return &row, nil
}

func (s *Store) UpsertLocalizedString(name, language, value string) error {
	existing, err := s.LocalizedString(name, language)
	if errors.Is(err, ErrNotFound) {
		row := models.LocalizedString{Name: name, Language: language, Value: value}
		if err := s.db.Create(&row).Error; err != nil {
			return fmt.Errorf("insert localized string %q/%s: %w", name, language, err)
		}
		return nil
	}
	if err != nil {
		return err
	}
	if existing.Value == value {
		return nil
	}
	existing.Value = value
	if err := s.db.Save(existing).Error; err != nil {
		return fmt.Errorf("update localized string %q/%s: %w", name, language, err)
	}
	return nil
}
