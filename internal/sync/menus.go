package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"uploader/internal/models"
	"uploader/internal/store"
)

// Menu builds a navigation menu from one descriptor. Unlike the list
// handlers a failed menu container is fatal to the whole request: without
// the container there is nothing to attach the remaining items to, so the
// caller gets a 400 instead of a partial result.
func (s *Syncer) Menu(ctx context.Context, desc *models.MenuDescriptor) (*models.BatchResult, int) {
	batch := &models.BatchResult{}

	if err := s.validate.Struct(desc); err != nil {
		batch.Append(models.ErrorResult("menu", desc.Name, err.Error()))
		return batch, http.StatusBadRequest
	}

	menu, err := s.store.MenuByName(desc.Name)
	if store.IsNotFound(err) {
		menu, err = s.store.CreateMenu(desc.Name)
	}
	if err != nil {
		batch.Append(models.ErrorResult("menu", desc.Name, fmt.Sprintf("Could not create menu %s: %v", desc.Name, err)))
		return batch, http.StatusBadRequest
	}

	if desc.ParentMenuName == "" {
		if err := s.linker.RegisterParent(models.ElementNavMenu, menu.TermTaxonomyID); err != nil {
			batch.Append(models.ErrorResult("menu", desc.Name, err.Error()))
		}
	} else {
		parent, err := s.store.MenuByName(desc.ParentMenuName)
		if store.IsNotFound(err) {
			batch.Append(models.ErrorResult("menu", desc.Name,
				fmt.Sprintf("Menu %s not found (you are trying to upload a translated menu, but its default language counterpart does not exist)", desc.ParentMenuName)))
		} else if err != nil {
			batch.Append(models.ErrorResult("menu", desc.Name, err.Error()))
		} else if err := s.linker.LinkChild(parent.TermTaxonomyID, menu.TermTaxonomyID, desc.Lang, models.ElementNavMenu); err != nil {
			batch.Append(models.ErrorResult("menu", desc.Name, err.Error()))
		}
	}

	// Parents first so children can find them by title.
	for i := range desc.Items {
		if desc.Items[i].ParentMenuItemName == "" {
			batch.Append(s.syncMenuItem(ctx, menu, &desc.Items[i]))
		}
	}
	for i := range desc.Items {
		if desc.Items[i].ParentMenuItemName != "" {
			batch.Append(s.syncMenuItem(ctx, menu, &desc.Items[i]))
		}
	}

	if err := s.writeMenuLayouts(menu, desc.Items); err != nil {
		batch.Append(models.ErrorResult("menu", desc.Name, err.Error()))
	}

	return batch, batch.StatusCode()
}

func (s *Syncer) syncMenuItem(ctx context.Context, menu *store.TermRecord, item *models.MenuItemDescriptor) models.ItemResult {
	fail := func(message string) models.ItemResult {
		return models.ErrorResult("menu_item_name", item.MenuItemName, message)
	}

	if err := s.validate.Struct(item); err != nil {
		return fail(err.Error())
	}
	if item.Position == nil || *item.Position < 0 {
		return fail(fmt.Sprintf("Could not determine position for %s", item.MenuItemName))
	}
	if item.ColumnNumber < 0 || item.ColumnNumber > 3 {
		return fail(fmt.Sprintf("Invalid column number for %s", item.MenuItemName))
	}

	targets := 0
	for _, set := range []bool{item.CategorySlug != "", item.ProductSKU != "", item.CustomURL != ""} {
		if set {
			targets++
		}
	}
	if targets > 1 {
		return fail(fmt.Sprintf("Menu item %s targets more than one of category, product and custom URL", item.MenuItemName))
	}
	if targets == 0 && !item.HeadingText {
		return fail(fmt.Sprintf("Menu item %s has no target", item.MenuItemName))
	}

	row := models.MenuItem{
		MenuID:   menu.TermID,
		Position: *item.Position,
		Title:    item.MenuItemName,
	}

	switch {
	case item.CategorySlug != "":
		id, err := s.resolver.TermIDBySlug(models.TaxonomyCategory, item.CategorySlug)
		if store.IsNotFound(err) {
			return fail(fmt.Sprintf("Category %s not found", item.CategorySlug))
		}
		if err != nil {
			return fail(err.Error())
		}
		row.Type = models.MenuItemTaxonomy
		row.ObjectID = id
	case item.ProductSKU != "":
		id, err := s.resolver.ProductIDBySKU(ctx, item.ProductSKU)
		if err != nil {
			return fail(err.Error())
		}
		if id == 0 {
			return fail(fmt.Sprintf("Product %s not found", item.ProductSKU))
		}
		row.Type = models.MenuItemPost
		row.ObjectID = id
	case item.CustomURL != "":
		row.Type = models.MenuItemCustom
		row.URL = item.CustomURL
	default: // heading
		row.Type = models.MenuItemCustom
		row.URL = "#"
	}

	if item.ParentMenuItemName != "" {
		parent, err := s.menuItemByTitle(menu.TermID, item.ParentMenuItemName)
		if err != nil {
			return fail(fmt.Sprintf("Menu item %s not found", item.ParentMenuItemName))
		}
		row.ParentID = parent.ID
	}

	raw, err := json.Marshal(item)
	if err != nil {
		return fail(err.Error())
	}
	row.Descriptor = string(raw)

	if err := s.store.InsertMenuItem(&row); err != nil {
		return fail(err.Error())
	}
	return models.SuccessResult("menu_item_name", item.MenuItemName, models.ActionCreated, row.ID)
}

func (s *Syncer) menuItemByTitle(menuID int64, title string) (*models.MenuItem, error) {
	items, err := s.store.MenuItems(menuID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Title == title {
			return &items[i], nil
		}
	}
	return nil, store.ErrNotFound
}

// Mega-menu layout, written after all rows exist. Each top-level item with
// children gets a grid: children grouped into their declared columns, widths
// from the parent's column_widths, plus a trailing column reserved for the
// image-swap widget.
type megaMenuColumn struct {
	Number  int     `json:"number"`
	Width   int     `json:"width"`
	ItemIDs []int64 `json:"item_ids"`
}

type megaMenuLayout struct {
	Type      string           `json:"type"`
	Columns   []megaMenuColumn `json:"columns"`
	ImageSwap bool             `json:"image_swap"`
}

func (s *Syncer) writeMenuLayouts(menu *store.TermRecord, items []models.MenuItemDescriptor) error {
	rows, err := s.store.MenuItems(menu.TermID)
	if err != nil {
		return err
	}

	columnOf := map[string]int{}
	widthsOf := map[string]*models.ColumnWidths{}
	for i := range items {
		columnOf[items[i].MenuItemName] = items[i].ColumnNumber
		if items[i].ColumnWidths != nil {
			widthsOf[items[i].MenuItemName] = items[i].ColumnWidths
		}
	}

	rowByID := map[int64]*models.MenuItem{}
	for i := range rows {
		rowByID[rows[i].ID] = &rows[i]
	}

	for i := range rows {
		parent := &rows[i]
		if parent.ParentID != 0 {
			continue
		}

		layout := megaMenuLayout{Type: "grid", ImageSwap: true}
		byColumn := map[int][]int64{}
		for j := range rows {
			child := &rows[j]
			if child.ParentID != parent.ID {
				continue
			}
			col := columnOf[child.Title]
			if col == 0 {
				col = 1
			}
			byColumn[col] = append(byColumn[col], child.ID)
		}
		if len(byColumn) == 0 {
			continue
		}

		widths := widthsOf[parent.Title]
		for col := 1; col <= 3; col++ {
			ids, ok := byColumn[col]
			if !ok {
				continue
			}
			layout.Columns = append(layout.Columns, megaMenuColumn{
				Number:  col,
				Width:   columnWidth(widths, col),
				ItemIDs: ids,
			})
		}
		layout.Columns = append(layout.Columns, megaMenuColumn{
			Number: len(layout.Columns) + 1,
			Width:  columnWidth(widths, 4),
		})

		raw, err := json.Marshal(layout)
		if err != nil {
			return err
		}
		if err := s.store.UpdateMenuItemSettings(parent.ID, string(raw)); err != nil {
			return err
		}
	}
	return nil
}

func columnWidth(w *models.ColumnWidths, col int) int {
	if w == nil {
		return 3
	}
	v := 0
	switch col {
	case 1:
		v = w.One
	case 2:
		v = w.Two
	case 3:
		v = w.Three
	case 4:
		v = w.Four
	}
	if v == 0 {
		return 3
	}
	return v
}
