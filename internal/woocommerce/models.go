package woocommerce

// Entity is the minimal shape shared by every upstream create/update
// response; handlers only need the assigned ID.
type Entity struct {
	ID int64 `json:"id"`
}

type Attribute struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type AttributeTerm struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	MenuOrder int    `json:"menu_order"`
}

// ProductAttribute is the attribute assignment as the upstream API reports
// it on a product, including the option values in use.
type ProductAttribute struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Slug    string   `json:"slug"`
	Options []string `json:"options"`
}

type Product struct {
	ID         int64              `json:"id"`
	SKU        string             `json:"sku"`
	Name       string             `json:"name"`
	Attributes []ProductAttribute `json:"attributes"`
}
