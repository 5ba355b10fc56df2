package models

import (
	"time"
)

type Category string

const (
	CategoryFinished     Category = "finished"
	CategorySemiFinished Category = "semi-finished"
	CategoryRaw          Category = "raw"
)

// Categories lists every accepted category in declaration order.
var Categories = []Category{CategoryFinished, CategorySemiFinished, CategoryRaw}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type UnitOfMeasure string

const (
	UnitMetre      UnitOfMeasure = "mtr"
	UnitMillimetre UnitOfMeasure = "mm"
	UnitLitre      UnitOfMeasure = "ltr"
	UnitMillilitre UnitOfMeasure = "ml"
	UnitCentimetre UnitOfMeasure = "cm"
	UnitMilligram  UnitOfMeasure = "mg"
	UnitGram       UnitOfMeasure = "gm"
	UnitUnit       UnitOfMeasure = "unit"
	UnitPack       UnitOfMeasure = "pack"
)

var UnitsOfMeasure = []UnitOfMeasure{
	UnitMetre, UnitMillimetre, UnitLitre, UnitMillilitre, UnitCentimetre,
	UnitMilligram, UnitGram, UnitUnit, UnitPack,
}

func (u UnitOfMeasure) Valid() bool {
	for _, v := range UnitsOfMeasure {
		if u == v {
			return true
		}
	}
	return false
}

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 250
	MaxSKULength         = 100
	MinLeadTime          = 0
	MaxLeadTime          = 999
)

// Product maps to the products table. The CHECK constraints repeat the
// request validation rules at the storage level.
type Product struct {
	ProductID     uint          `gorm:"column:product_id;primaryKey;autoIncrement"`
	Name          string        `gorm:"type:varchar(100);not null"`
	Category      Category      `gorm:"type:varchar(20);not null;check:chk_products_category,category IN ('finished','semi-finished','raw')"`
	Description   *string       `gorm:"type:varchar(250)"`
	ProductImage  *string       `gorm:"type:text"`
	SKU           string        `gorm:"column:sku;type:varchar(100);uniqueIndex;not null"`
	UnitOfMeasure UnitOfMeasure `gorm:"type:varchar(10);not null;check:chk_products_unit_of_measure,unit_of_measure IN ('mtr','mm','ltr','ml','cm','mg','gm','unit','pack')"`
	LeadTime      int           `gorm:"not null;check:chk_products_lead_time,lead_time >= 0 AND lead_time <= 999"`
	CreatedDate   time.Time     `gorm:"not null;autoCreateTime"`
	UpdatedDate   time.Time     `gorm:"not null;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

// ProductResponse is the JSON shape returned by every product endpoint.
type ProductResponse struct {
	ProductID     uint          `json:"product_id"`
	Name          string        `json:"name"`
	Category      Category      `json:"category"`
	Description   *string       `json:"description"`
	ProductImage  *string       `json:"product_image"`
	SKU           string        `json:"sku"`
	UnitOfMeasure UnitOfMeasure `json:"unit_of_measure"`
	LeadTime      int           `json:"lead_time"`
	CreatedDate   time.Time     `json:"created_date"`
	UpdatedDate   time.Time     `json:"updated_date"`
}

func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Category:      p.Category,
		Description:   p.Description,
		ProductImage:  p.ProductImage,
		SKU:           p.SKU,
		UnitOfMeasure: p.UnitOfMeasure,
		LeadTime:      p.LeadTime,
		CreatedDate:   p.CreatedDate,
		UpdatedDate:   p.UpdatedDate,
	}
}

func ToResponses(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, products[i].ToResponse())
	}
	return out
}

// CreateProductRequest is the request payload for adding a product.
// LeadTime is a pointer so that an explicit 0 passes "required".
type CreateProductRequest struct {
	Name          string        `json:"name" binding:"required,max=100"`
	Category      Category      `json:"category" binding:"required,oneof=finished semi-finished raw"`
	Description   *string       `json:"description" binding:"omitempty,max=250"`
	ProductImage  *string       `json:"product_image"`
	SKU           string        `json:"sku" binding:"required,max=100"`
	UnitOfMeasure UnitOfMeasure `json:"unit_of_measure" binding:"required,oneof=mtr mm ltr ml cm mg gm unit pack"`
	LeadTime      *int          `json:"lead_time" binding:"required,min=0,max=999"`
}

func (r CreateProductRequest) ToModel() Product {
	p := Product{
		Name:          r.Name,
		Category:      r.Category,
		Description:   r.Description,
		ProductImage:  r.ProductImage,
		SKU:           r.SKU,
		UnitOfMeasure: r.UnitOfMeasure,
	}
	if r.LeadTime != nil {
		p.LeadTime = *r.LeadTime
	}
	return p
}

// UpdateProductRequest is the request payload for a partial update. Only
// fields present in the body are applied. null clears description and
// product_image and is rejected for the other fields.
type UpdateProductRequest struct {
	Name          Optional[string]        `json:"name" binding:"omitempty,min=1,max=100"`
	Category      Optional[Category]      `json:"category" binding:"omitempty,oneof=finished semi-finished raw"`
	Description   Optional[string]        `json:"description" binding:"omitempty,max=250"`
	ProductImage  Optional[string]        `json:"product_image"`
	SKU           Optional[string]        `json:"sku" binding:"omitempty,min=1,max=100"`
	UnitOfMeasure Optional[UnitOfMeasure] `json:"unit_of_measure" binding:"omitempty,oneof=mtr mm ltr ml cm mg gm unit pack"`
	LeadTime      Optional[int]           `json:"lead_time" binding:"omitempty,min=0,max=999"`
}

// nullRequiredFields lists {json name, field name} of non-nullable fields
// sent as null.
func (r UpdateProductRequest) nullRequiredFields() [][2]string {
	var out [][2]string
	if r.Name.Null {
		out = append(out, [2]string{"name", "Name"})
	}
	if r.Category.Null {
		out = append(out, [2]string{"category", "Category"})
	}
	if r.SKU.Null {
		out = append(out, [2]string{"sku", "SKU"})
	}
	if r.UnitOfMeasure.Null {
		out = append(out, [2]string{"unit_of_measure", "UnitOfMeasure"})
	}
	if r.LeadTime.Null {
		out = append(out, [2]string{"lead_time", "LeadTime"})
	}
	return out
}

// Changes returns the column updates for the fields present in the request.
func (r UpdateProductRequest) Changes() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Name.Set {
		updates["name"] = r.Name.column()
	}
	if r.Category.Set {
		updates["category"] = r.Category.column()
	}
	if r.Description.Set {
		updates["description"] = r.Description.column()
	}
	if r.ProductImage.Set {
		updates["product_image"] = r.ProductImage.column()
	}
	if r.SKU.Set {
		updates["sku"] = r.SKU.column()
	}
	if r.UnitOfMeasure.Set {
		updates["unit_of_measure"] = r.UnitOfMeasure.column()
	}
	if r.LeadTime.Set {
		updates["lead_time"] = r.LeadTime.column()
	}
	return updates
}
