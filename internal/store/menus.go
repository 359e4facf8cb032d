package store

import (
	"fmt"

	"github.com/goliatone/go-slug"

	"uploader/internal/models"
)

// Navigation menus are terms in the nav_menu taxonomy; their entries live
// in the menu_items table.

func (s *Store) CreateMenu(name string) (*TermRecord, error) {
	if name == "" {
		return nil, fmt.Errorf("menu name must not be empty")
	}
	menuSlug, err := slug.Normalize(name)
	if err != nil {
		return nil, fmt.Errorf("menu slug for %q: %w", name, err)
	}
	return s.InsertTerm(models.TaxonomyNavMenu, name, menuSlug, "")
}

func (s *Store) MenuByName(name string) (*TermRecord, error) {
	return s.TermByName(models.TaxonomyNavMenu, name)
}

func (s *Store) InsertMenuItem(item *models.MenuItem) error {
	if err := s.db.Create(item).Error; err != nil {
		return fmt.Errorf("insert menu item %q: %w", item.Title, err)
	}
	return nil
}

func (s *Store) MenuItems(menuID int64) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.Where("menu_id = ?", menuID).Order("position, id").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("menu item listing %d: %w", menuID, err)
	}
	return items, nil
}

func (s *Store) UpdateMenuItemSettings(itemID int64, settings string) error {
	err := s.db.Model(&models.MenuItem{}).Where("id = ?", itemID).
		Update("settings", settings).Error
	if err != nil {
		return fmt.Errorf("update menu item settings %d: %w", itemID, err)
	}
	return nil
}

// DeleteMenu removes the container term, its taxonomy row and all entries.
func (s *Store) DeleteMenu(menuID int64) error {
	if err := s.db.Where("menu_id = ?", menuID).Delete(&models.MenuItem{}).Error; err != nil {
		return fmt.Errorf("delete menu items %d: %w", menuID, err)
	}
	if err := s.db.Where("term_id = ? AND taxonomy = ?", menuID, models.TaxonomyNavMenu).
		Delete(&models.TermTaxonomy{}).Error; err != nil {
		return fmt.Errorf("delete menu taxonomy %d: %w", menuID, err)
	}
	if err := s.db.Where("id = ?", menuID).Delete(&models.Term{}).Error; err != nil {
		return fmt.Errorf("delete menu term %d: %w", menuID, err)
	}
	return nil
}
