package models

import "time"

// Store rows for the CMS side of the system: taxonomy terms, attachments,
// the translation-group table and the side metadata tables.

// Taxonomy names used throughout the store.
const (
	TaxonomyCategory = "product_cat"
	TaxonomyTag      = "product_tag"
	TaxonomyNavMenu  = "nav_menu"

	// AttributeTaxonomyPrefix prefixes attribute slugs to form their
	// taxonomy name (attribute "color" owns taxonomy "pa_color").
	AttributeTaxonomyPrefix = "pa_"
)

// Element types keyed in the translations table.
const (
	ElementProduct   = "post_product"
	ElementVariation = "post_product_variation"
	ElementNavMenu   = "tax_nav_menu"
)

type Term struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug" gorm:"index;not null"`
}

type TermTaxonomy struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	TermID      int64  `json:"term_id" gorm:"index;not null"`
	Taxonomy    string `json:"taxonomy" gorm:"index;not null"`
	Description string `json:"description"`
	ParentID    int64  `json:"parent_id"`
}

// TermMeta holds per-term metadata. Term ordering lives here under key
// "order"; at most one order row per term is kept.
type TermMeta struct {
	ID     int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	TermID int64  `json:"term_id" gorm:"index;not null"`
	Key    string `json:"key" gorm:"column:meta_key;index;not null"`
	Value  string `json:"value" gorm:"column:meta_value"`
}

// TermColor is the side table for the color extension on attribute terms.
type TermColor struct {
	ID     int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	TermID int64  `json:"term_id" gorm:"index;not null"`
	Key    string `json:"key" gorm:"column:meta_key;not null"`
	Value  string `json:"value" gorm:"column:meta_value"`
}

// TermSEO carries the optional search metadata for categories and tags.
type TermSEO struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	TermID       int64  `json:"term_id" gorm:"index;not null"`
	Taxonomy     string `json:"taxonomy" gorm:"index;not null"`
	FocusKeyword string `json:"focus_keyword"`
	Description  string `json:"description"`
}

type Attachment struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	FileName string `json:"file_name" gorm:"uniqueIndex;not null"`
	Title    string `json:"title"`
	AltText  string `json:"alt_text"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	MimeType string `json:"mime_type"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Size     int64  `json:"size"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Translation is one membership row of a translation group: all rows
// sharing a TRID are per-language copies of the same logical entity.
type Translation struct {
	ID                 int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ElementType        string `json:"element_type" gorm:"index:idx_element,unique;not null"`
	ElementID          int64  `json:"element_id" gorm:"index:idx_element,unique;not null"`
	TRID               int64  `json:"trid" gorm:"index;not null"`
	LanguageCode       string `json:"language_code" gorm:"not null"`
	SourceLanguageCode string `json:"source_language_code"`
}

// LocalizedString stores translated attribute labels, keyed by the
// default-language label text.
type LocalizedString struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"index:idx_localized,unique;not null"`
	Language string `json:"language" gorm:"index:idx_localized,unique;not null"`
	Value    string `json:"value" gorm:"not null"`
}

// Menu item types.
const (
	MenuItemTaxonomy = "taxonomy"
	MenuItemPost     = "post_type"
	MenuItemCustom   = "custom"
)

type MenuItem struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	MenuID   int64  `json:"menu_id" gorm:"index;not null"`
	ParentID int64  `json:"parent_id"`
	Position int    `json:"position"`
	Title    string `json:"title" gorm:"not null"`
	Type     string `json:"type" gorm:"not null"`
	ObjectID int64  `json:"object_id"`
	URL      string `json:"url"`

	// Settings holds the serialized mega-menu layout for this item.
	Settings string `json:"settings"`

	// Descriptor retains the uploaded item for the layout pass.
	Descriptor string `json:"descriptor"`
}

// SyncFailure is written by the worker for every failed batch item so
// operators can review and re-submit them.
type SyncFailure struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Entity     string    `json:"entity" gorm:"index;not null"`
	NaturalKey string    `json:"natural_key"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// Table names are pinned so the store layer can join on them directly.

func (Term) TableName() string            { return "terms" }
func (TermTaxonomy) TableName() string    { return "term_taxonomy" }
func (TermMeta) TableName() string        { return "term_meta" }
func (TermColor) TableName() string       { return "term_color" }
func (TermSEO) TableName() string         { return "term_seo" }
func (Attachment) TableName() string      { return "attachments" }
func (Translation) TableName() string     { return "translations" }
func (LocalizedString) TableName() string { return "localized_strings" }
func (MenuItem) TableName() string        { return "menu_items" }
func (SyncFailure) TableName() string     { return "sync_failures" }
