package models

// Item descriptors for the batch upload endpoints. Every descriptor carries a
// natural key (sku, slug or filename) plus optional translation markers: a
// language code and a reference to the default-language counterpart.

// TermRef references a category or tag by slug. The resolver fills in ID.
type TermRef struct {
	ID   int64  `json:"id,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// ImageRef references a stored image by filename. The resolver fills in ID
// and clears the name before the descriptor is sent upstream.
type ImageRef struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// ProductAttribute is an attribute assignment on a product.
type ProductAttribute struct {
	ID        int64    `json:"id,omitempty"`
	Slug      string   `json:"slug,omitempty"`
	Name      string   `json:"name,omitempty"`
	Options   []string `json:"options,omitempty"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`

	// Default selects the option preselected on the product page. An empty
	// string with HasDefault set falls back to the first option.
	Default    string `json:"default,omitempty"`
	HasDefault bool   `json:"has_default,omitempty"`
}

// DefaultAttribute is the upstream representation of a preselected option.
type DefaultAttribute struct {
	ID     int64  `json:"id"`
	Option string `json:"option"`
}

type ProductItem struct {
	SKU              string `json:"sku,omitempty" validate:"required"`
	Name             string `json:"name,omitempty"`
	Type             string `json:"type,omitempty"`
	Status           string `json:"status,omitempty"`
	Description      string `json:"description,omitempty"`
	ShortDescription string `json:"short_description,omitempty"`
	RegularPrice     string `json:"regular_price,omitempty"`
	SalePrice        string `json:"sale_price,omitempty"`
	ReviewsAllowed   bool   `json:"reviews_allowed"`

	Categories []TermRef          `json:"categories,omitempty"`
	Tags       []TermRef          `json:"tags,omitempty"`
	Attributes []ProductAttribute `json:"attributes,omitempty"`
	Images     []ImageRef         `json:"images,omitempty"`

	DefaultAttributes []DefaultAttribute `json:"default_attributes,omitempty"`

	UpsellSKUs    []string `json:"upsell_skus,omitempty"`
	CrossSellSKUs []string `json:"cross_sell_skus,omitempty"`
	UpsellIDs     []int64  `json:"upsell_ids,omitempty"`
	CrossSellIDs  []int64  `json:"cross_sell_ids,omitempty"`

	// Lang marks the item as a translation of the default-language product
	// with the same SKU. TranslationOf is set by the handler.
	Lang          string `json:"lang,omitempty"`
	TranslationOf int64  `json:"translation_of,omitempty"`
}

// VariationAttribute selects one option of a product attribute.
type VariationAttribute struct {
	ID     int64  `json:"id,omitempty"`
	Slug   string `json:"slug,omitempty" validate:"required"`
	Option string `json:"option" validate:"required"`
}

type VariationItem struct {
	SKU          string `json:"sku,omitempty" validate:"required"`
	RegularPrice string `json:"regular_price,omitempty"`
	SalePrice    string `json:"sale_price,omitempty"`
	Description  string `json:"description,omitempty"`
	MenuOrder    int    `json:"menu_order,omitempty"`

	Attributes []VariationAttribute `json:"attributes,omitempty"`
	Image      *ImageRef            `json:"image,omitempty"`

	Lang          string `json:"lang,omitempty"`
	TranslationOf int64  `json:"translation_of,omitempty"`
}

// VariationBatch groups variation descriptors under their parent product.
type VariationBatch struct {
	ParentProductSKU string          `json:"parent_product_sku" validate:"required"`
	Variations       []VariationItem `json:"variations" validate:"required,dive"`
}

type AttributeItem struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug,omitempty" validate:"required"`
	Type        string `json:"type,omitempty"`
	OrderBy     string `json:"order_by,omitempty"`
	HasArchives bool   `json:"has_archives,omitempty"`

	EnglishSlug  string `json:"english_slug,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// TermExtra carries optional term extensions outside the upstream schema.
type TermExtra struct {
	HexCode string `json:"hex_code,omitempty"`
}

type TermItem struct {
	Attribute   string `json:"attribute" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug,omitempty" validate:"required"`
	Description string `json:"description,omitempty"`
	MenuOrder   int    `json:"menu_order,omitempty"`

	Extra *TermExtra `json:"extra,omitempty"`

	EnglishSlug  string `json:"english_slug,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// SEOData is the optional search metadata carried by categories and tags.
type SEOData struct {
	FocusKeyword string `json:"focus_keyword,omitempty"`
	Description  string `json:"description,omitempty"`
}

// TaxonomyItem is a category or tag descriptor; the handler decides the
// taxonomy from the endpoint it was posted to.
type TaxonomyItem struct {
	Name        string   `json:"name" validate:"required"`
	Slug        string   `json:"slug,omitempty" validate:"required"`
	Description string   `json:"description,omitempty"`
	SEO         *SEOData `json:"seo,omitempty"`

	EnglishSlug  string `json:"english_slug,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

type ImageItem struct {
	Name        string `json:"name" validate:"required"`
	Title       string `json:"title,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Content     string `json:"content,omitempty"`
	Description string `json:"description,omitempty"`
	Base64Image string `json:"base64image" validate:"required"`
}

// ColumnWidths sets the mega-menu grid spans per column.
type ColumnWidths struct {
	One   int `json:"one"`
	Two   int `json:"two"`
	Three int `json:"three"`
	Four  int `json:"four"`
}

type MenuItemDescriptor struct {
	MenuItemName       string `json:"menu_item_name" validate:"required"`
	ParentMenuItemName string `json:"parent_menu_item_name,omitempty"`
	Position           *int   `json:"position"`
	ColumnNumber       int    `json:"column_number,omitempty"`

	CategorySlug string `json:"category_slug,omitempty"`
	ProductSKU   string `json:"product_sku,omitempty"`
	CustomURL    string `json:"custom_url,omitempty"`
	HeadingText  bool   `json:"heading_text,omitempty"`

	ColumnWidths *ColumnWidths `json:"column_widths,omitempty"`
}

type MenuDescriptor struct {
	Name           string               `json:"name" validate:"required"`
	Lang           string               `json:"lang,omitempty"`
	ParentMenuName string               `json:"parent_menu_name,omitempty"`
	Items          []MenuItemDescriptor `json:"items"`
}
