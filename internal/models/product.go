package models

import (
	"time"
)

type Product struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	Category             string     `gorm:"size:100" json:"category"`
	ProductName          string     `gorm:"size:200" json:"product_name"`
	Brand                string     `gorm:"size:100" json:"brand"`
	ShortDescription     string     `gorm:"type:text" json:"short_description"`
	LongDescription      string     `gorm:"type:text" json:"long_description"`
	DetailedDescription  string     `gorm:"type:text" json:"detailed_description"`
	MRP                  float64    `gorm:"column:mrp;type:decimal(10,2);default:0.00" json:"mrp"`
	OfferPrice           float64    `gorm:"type:decimal(10,2);default:0.00" json:"offer_price"`
	SKU                  string     `gorm:"column:sku;size:100" json:"sku"`
	InStock              bool       `gorm:"default:true" json:"in_stock"`
	StockNumber          int        `gorm:"default:0" json:"stock_number"`
	DownloadPDFs         StringList `gorm:"column:download_pdfs;type:text" json:"download_pdfs"`
	ProductImageURLs     StringList `gorm:"column:product_image_urls;type:text" json:"product_image_urls"`
	AdditionalMediaURLs  StringList `gorm:"column:additional_media_urls;type:text" json:"additional_media_urls"`
	YoutubeLinks         StringList `gorm:"type:text" json:"youtube_links"`
	TechnicalInformation string     `gorm:"type:text" json:"technical_information"`
	Manufacturer         string     `gorm:"size:150" json:"manufacturer"`
	SpecialNote          string     `gorm:"type:text" json:"special_note"`
	WhatsappNumber       string     `gorm:"size:20" json:"whatsapp_number"`
	IsRubber             bool       `gorm:"default:false" json:"is_rubber"`
	RubberDensity        *float64   `gorm:"type:decimal(10,3)" json:"rubber_density"`
	RubberHeight         *float64   `gorm:"type:decimal(10,3)" json:"rubber_height"`
	RubberLength         *float64   `gorm:"type:decimal(10,3)" json:"rubber_length"`
	RubberThickness      *float64   `gorm:"type:decimal(10,3)" json:"rubber_thickness"`
	RubberDescription    string     `gorm:"type:text" json:"rubber_description"`
	ShowInStore          bool       `gorm:"default:true" json:"show_in_store"`
	Variants             []Variant  `gorm:"foreignKey:ProductID" json:"variants"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type Variant struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	ProductID    uint    `gorm:"index;not null" json:"product_id"`
	VariantName  string  `gorm:"size:150;not null" json:"variant_name"`
	VariantPrice float64 `gorm:"type:decimal(10,2);not null" json:"variant_price"`
}
