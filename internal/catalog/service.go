package catalog

import (
	"errors"
	"fmt"
	"strings"

	"catalog-app/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("product not found")
	ErrValidation = errors.New("validation failed")
)

const DefaultPerPage = 10

// Page is the result shape shared by List and Search.
type Page struct {
	Products    []models.Product
	TotalItems  int64
	TotalPages  int
	CurrentPage int
	PerPage     int
}

type Service struct {
	db      *gorm.DB
	perPage int

	// test seam, runs between the product insert and the variant inserts
	afterProductInsert func()
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, perPage: DefaultPerPage}
}

// SetPerPage overrides the page size used when a request omits per_page.
func (s *Service) SetPerPage(n int) {
	if n > 0 {
		s.perPage = n
	}
}

func (s *Service) validateVariants(variants []VariantInput) error {
	for _, v := range variants {
		if strings.TrimSpace(v.VariantName) == "" {
			return fmt.Errorf("%w: variant_name is required", ErrValidation)
		}
		if v.VariantPrice < 0 {
			return fmt.Errorf("%w: variant_price must be non-negative", ErrValidation)
		}
	}
	return nil
}

// Create stores a new product and its variant rows in one transaction so
// a concurrent reader never sees the product without its variants.
func (s *Service) Create(in CreateInput) (*models.Product, error) {
	if in.MRP < 0 || in.OfferPrice < 0 {
		return nil, fmt.Errorf("%w: prices must be non-negative", ErrValidation)
	}
	if err := s.validateVariants(in.Variants); err != nil {
		return nil, err
	}

	product := models.Product{
		Category:             in.Category,
		ProductName:          in.ProductName,
		Brand:                in.Brand,
		ShortDescription:     in.ShortDescription,
		LongDescription:      in.LongDescription,
		DetailedDescription:  in.DetailedDescription,
		MRP:                  in.MRP,
		OfferPrice:           in.OfferPrice,
		SKU:                  in.SKU,
		InStock:              boolOrDefault(in.InStock, true),
		StockNumber:          in.StockNumber,
		DownloadPDFs:         models.StringList(in.DownloadPDFs),
		ProductImageURLs:     models.StringList(in.ProductImageURLs),
		AdditionalMediaURLs:  models.StringList(in.AdditionalMediaURLs),
		YoutubeLinks:         models.StringList(in.YoutubeLinks),
		TechnicalInformation: in.TechnicalInformation,
		Manufacturer:         in.Manufacturer,
		SpecialNote:          in.SpecialNote,
		WhatsappNumber:       in.WhatsappNumber,
		IsRubber:             in.IsRubber.Bool(),
		RubberDensity:        in.RubberDensity,
		RubberHeight:         in.RubberHeight,
		RubberLength:         in.RubberLength,
		RubberThickness:      in.RubberThickness,
		RubberDescription:    in.RubberDescription,
		ShowInStore:          boolOrDefault(in.ShowInStore, true),
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Omit("Variants").Create(&product).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if s.afterProductInsert != nil {
		s.afterProductInsert()
	}

	variants := make([]models.Variant, 0, len(in.Variants))
	for _, v := range in.Variants {
		variant := models.Variant{
			ProductID:    product.ID,
			VariantName:  v.VariantName,
			VariantPrice: v.VariantPrice,
		}
		if err := tx.Create(&variant).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		variants = append(variants, variant)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	product.Variants = variants
	return &product, nil
}

// Get returns the product with its variants, or ErrNotFound.
func (s *Service) Get(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Variants").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if product.Variants == nil {
		product.Variants = []models.Variant{}
	}
	return &product, nil
}

// List returns one page of products matching the filters, ordered by id
// ascending so pagination is stable across requests. Pages past the end
// return an empty slice, not an error.
func (s *Service) List(f ListFilters, page, perPage int) (*Page, error) {
	query := s.db.Model(&models.Product{})
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Brand != "" {
		query = query.Where("brand = ?", f.Brand)
	}
	if f.InStock != nil {
		query = query.Where("in_stock = ?", *f.InStock)
	}
	if f.ShowInStore != nil {
		query = query.Where("show_in_store = ?", *f.ShowInStore)
	}
	return s.paginate(query, page, perPage)
}

// Search matches the query case-insensitively as a substring across the
// product's text fields, OR-combined. An empty query matches everything.
func (s *Service) Search(q string, page, perPage int) (*Page, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.List(ListFilters{}, page, perPage)
	}

	like := "%" + strings.ToLower(q) + "%"
	columns := []string{
		"product_name", "category", "brand",
		"short_description", "long_description", "detailed_description",
		"rubber_description",
	}
	conditions := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		conditions = append(conditions, fmt.Sprintf("LOWER(%s) LIKE ?", col))
		args = append(args, like)
	}

	query := s.db.Model(&models.Product{}).Where(strings.Join(conditions, " OR "), args...)
	return s.paginate(query, page, perPage)
}

func (s *Service) paginate(query *gorm.DB, page, perPage int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = s.perPage
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, perPage)
	offset := (page - 1) * perPage
	if err := query.Preload("Variants").Order("id asc").Offset(offset).Limit(perPage).Find(&products).Error; err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Variants == nil {
			products[i].Variants = []models.Variant{}
		}
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return &Page{
		Products:    products,
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PerPage:     perPage,
	}, nil
}

// Update merges the supplied fields into the stored product: nil input
// fields are left unchanged, non-nil fields overwrite, and a present
// variants list replaces the stored set by id-diff. The product row and
// every variant write commit in one transaction.
func (s *Service) Update(id uint, in UpdateInput) (*models.Product, error) {
	if in.MRP != nil && *in.MRP < 0 {
		return nil, fmt.Errorf("%w: mrp must be non-negative", ErrValidation)
	}
	if in.OfferPrice != nil && *in.OfferPrice < 0 {
		return nil, fmt.Errorf("%w: offer_price must be non-negative", ErrValidation)
	}
	if in.Variants != nil {
		if err := s.validateVariants(*in.Variants); err != nil {
			return nil, err
		}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var product models.Product
	if err := tx.Preload("Variants").First(&product, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := buildUpdates(in)
	if len(updates) > 0 {
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if in.Variants != nil {
		if err := applyVariantDiff(tx, &product, *in.Variants); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.Get(id)
}

// buildUpdates maps only the present input fields to their columns so
// GORM writes explicit zero values instead of skipping them.
func buildUpdates(in UpdateInput) map[string]interface{} {
	updates := map[string]interface{}{}
	setString := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setFloat := func(col string, v *float64) {
		if v != nil {
			updates[col] = *v
		}
	}
	setList := func(col string, v *[]string) {
		if v != nil {
			updates[col] = models.StringList(*v)
		}
	}

	setString("category", in.Category)
	setString("product_name", in.ProductName)
	setString("brand", in.Brand)
	setString("short_description", in.ShortDescription)
	setString("long_description", in.LongDescription)
	setString("detailed_description", in.DetailedDescription)
	setFloat("mrp", in.MRP)
	setFloat("offer_price", in.OfferPrice)
	setString("sku", in.SKU)
	if in.InStock != nil {
		updates["in_stock"] = in.InStock.Bool()
	}
	if in.StockNumber != nil {
		updates["stock_number"] = *in.StockNumber
	}
	setList("download_pdfs", in.DownloadPDFs)
	setList("product_image_urls", in.ProductImageURLs)
	setList("additional_media_urls", in.AdditionalMediaURLs)
	setList("youtube_links", in.YoutubeLinks)
	setString("technical_information", in.TechnicalInformation)
	setString("manufacturer", in.Manufacturer)
	setString("special_note", in.SpecialNote)
	setString("whatsapp_number", in.WhatsappNumber)
	if in.IsRubber != nil {
		updates["is_rubber"] = in.IsRubber.Bool()
	}
	setFloat("rubber_density", in.RubberDensity)
	setFloat("rubber_height", in.RubberHeight)
	setFloat("rubber_length", in.RubberLength)
	setFloat("rubber_thickness", in.RubberThickness)
	setString("rubber_description", in.RubberDescription)
	if in.ShowInStore != nil {
		updates["show_in_store"] = in.ShowInStore.Bool()
	}
	return updates
}

// applyVariantDiff reconciles the stored variant rows against the
// submitted list: rows whose id is not resubmitted are deleted, matching
// ids are updated in place, and entries without a matching id are
// inserted as new rows.
func applyVariantDiff(tx *gorm.DB, product *models.Product, submitted []VariantInput) error {
	existing := map[uint]bool{}
	for _, v := range product.Variants {
		existing[v.ID] = true
	}

	keep := map[uint]bool{}
	for _, v := range submitted {
		if v.ID != 0 && existing[v.ID] {
			keep[v.ID] = true
		}
	}

	for _, v := range product.Variants {
		if !keep[v.ID] {
			if err := tx.Delete(&models.Variant{}, v.ID).Error; err != nil {
				return err
			}
		}
	}

	for _, v := range submitted {
		if v.ID != 0 && existing[v.ID] {
			err := tx.Model(&models.Variant{}).Where("id = ? AND product_id = ?", v.ID, product.ID).
				Updates(map[string]interface{}{
					"variant_name":  v.VariantName,
					"variant_price": v.VariantPrice,
				}).Error
			if err != nil {
				return err
			}
			continue
		}
		variant := models.Variant{
			ProductID:    product.ID,
			VariantName:  v.VariantName,
			VariantPrice: v.VariantPrice,
		}
		if err := tx.Create(&variant).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the product and its variants in one transaction.
// Orders referencing the product are left in place; see DESIGN.md.
func (s *Service) Delete(id uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var product models.Product
	if err := tx.First(&product, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := tx.Where("product_id = ?", id).Delete(&models.Variant{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&product).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// BulkDelete removes every listed product and its variants. Ids without
// a matching row are skipped; the count of deleted products is returned.
func (s *Service) BulkDelete(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	if err := tx.Where("product_id IN ?", ids).Delete(&models.Variant{}).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	result := tx.Where("id IN ?", ids).Delete(&models.Product{})
	if result.Error != nil {
		tx.Rollback()
		return 0, result.Error
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return result.RowsAffected, nil
}

func boolOrDefault(v *FlexBool, def bool) bool {
	if v == nil {
		return def
	}
	return v.Bool()
}
