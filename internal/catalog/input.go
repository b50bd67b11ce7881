package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlexBool accepts either a native JSON boolean or the "on" marker that
// HTML checkboxes submit, so the same input structs serve the JSON API
// and the management forms.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*b = FlexBool(t)
	case string:
		*b = FlexBool(t == "on" || strings.EqualFold(t, "true") || t == "1")
	case nil:
		*b = false
	default:
		return fmt.Errorf("cannot unmarshal %T into boolean field", v)
	}
	return nil
}

func (b FlexBool) Bool() bool { return bool(b) }

type VariantInput struct {
	ID           uint    `json:"id"`
	VariantName  string  `json:"variant_name"`
	VariantPrice float64 `json:"variant_price"`
}

// CreateInput carries every recognized product field. Unknown JSON keys
// are dropped by the decoder. Absent booleans keep their documented
// defaults (in_stock and show_in_store default true).
type CreateInput struct {
	Category             string         `json:"category"`
	ProductName          string         `json:"product_name"`
	Brand                string         `json:"brand"`
	ShortDescription     string         `json:"short_description"`
	LongDescription      string         `json:"long_description"`
	DetailedDescription  string         `json:"detailed_description"`
	MRP                  float64        `json:"mrp"`
	OfferPrice           float64        `json:"offer_price"`
	SKU                  string         `json:"sku"`
	InStock              *FlexBool      `json:"in_stock"`
	StockNumber          int            `json:"stock_number"`
	DownloadPDFs         []string       `json:"download_pdfs"`
	ProductImageURLs     []string       `json:"product_image_urls"`
	AdditionalMediaURLs  []string       `json:"additional_media_urls"`
	YoutubeLinks         []string       `json:"youtube_links"`
	TechnicalInformation string         `json:"technical_information"`
	Manufacturer         string         `json:"manufacturer"`
	SpecialNote          string         `json:"special_note"`
	WhatsappNumber       string         `json:"whatsapp_number"`
	IsRubber             FlexBool       `json:"is_rubber"`
	RubberDensity        *float64       `json:"rubber_density"`
	RubberHeight         *float64       `json:"rubber_height"`
	RubberLength         *float64       `json:"rubber_length"`
	RubberThickness      *float64       `json:"rubber_thickness"`
	RubberDescription    string         `json:"rubber_description"`
	ShowInStore          *FlexBool      `json:"show_in_store"`
	Variants             []VariantInput `json:"variants"`
}

// UpdateInput distinguishes "field omitted" from "field explicitly set"
// through pointer presence: a nil field leaves the stored value
// untouched, a non-nil field overwrites it, including explicit zero and
// empty values. List fields merge at the whole-sequence level and the
// variants field, when present, triggers diff-by-id-set replacement.
type UpdateInput struct {
	Category             *string         `json:"category"`
	ProductName          *string         `json:"product_name"`
	Brand                *string         `json:"brand"`
	ShortDescription     *string         `json:"short_description"`
	LongDescription      *string         `json:"long_description"`
	DetailedDescription  *string         `json:"detailed_description"`
	MRP                  *float64        `json:"mrp"`
	OfferPrice           *float64        `json:"offer_price"`
	SKU                  *string         `json:"sku"`
	InStock              *FlexBool       `json:"in_stock"`
	StockNumber          *int            `json:"stock_number"`
	DownloadPDFs         *[]string       `json:"download_pdfs"`
	ProductImageURLs     *[]string       `json:"product_image_urls"`
	AdditionalMediaURLs  *[]string       `json:"additional_media_urls"`
	YoutubeLinks         *[]string       `json:"youtube_links"`
	TechnicalInformation *string         `json:"technical_information"`
	Manufacturer         *string         `json:"manufacturer"`
	SpecialNote          *string         `json:"special_note"`
	WhatsappNumber       *string         `json:"whatsapp_number"`
	IsRubber             *FlexBool       `json:"is_rubber"`
	RubberDensity        *float64        `json:"rubber_density"`
	RubberHeight         *float64        `json:"rubber_height"`
	RubberLength         *float64        `json:"rubber_length"`
	RubberThickness      *float64        `json:"rubber_thickness"`
	RubberDescription    *string         `json:"rubber_description"`
	ShowInStore          *FlexBool       `json:"show_in_store"`
	Variants             *[]VariantInput `json:"variants"`
}

// ListFilters are conjunctive; a nil/empty filter imposes no constraint.
type ListFilters struct {
	Category    string
	Brand       string
	InStock     *bool
	ShowInStore *bool
}
