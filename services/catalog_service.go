package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPerPage = 2
	MaxPerPage     = 100
)

// columns a client may sort menu items by
var menuItemOrdering = map[string]string{
	"id":        "id",
	"title":     "title",
	"price":     "price",
	"inventory": "inventory",
	"category":  "category_id",
}

type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

type MenuItemFilter struct {
	CategoryTitle string
	ToPrice       *decimal.Decimal
	Search        string
	Ordering      string
	Page          int
	PerPage       int
}

// MenuItemInput is the write payload for menu items. Nil fields are left
// untouched on partial updates and rejected on full writes.
type MenuItemInput struct {
	Title      *string
	Price      *decimal.Decimal
	Inventory  *int
	CategoryID *uint
}

func (s *CatalogService) ListMenuItems(f MenuItemFilter) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	if f.PerPage <= 0 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Page < 1 {
		return items, nil
	}

	q := s.DB.Model(&models.MenuItem{}).Preload("Category")
	if f.CategoryTitle != "" {
		q = q.Where("category_id IN (?)", s.DB.Model(&models.Category{}).Select("id").Where("title = ?", f.CategoryTitle))
	}
	if f.ToPrice != nil {
		q = q.Where("price <= ?", *f.ToPrice)
	}
	if f.Search != "" {
		q = q.Where("title LIKE ? ESCAPE ?", "%"+likeEscaper.Replace(f.Search)+"%", `\`)
	}

	orders, err := parseOrdering(f.Ordering)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		q = q.Order(o)
	}
	q = q.Order("id")

	err = q.Offset((f.Page - 1) * f.PerPage).Limit(f.PerPage).Find(&items).Error
	return items, err
}

// likeEscaper makes search text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func parseOrdering(raw string) ([]clause.OrderByColumn, error) {
	var out []clause.OrderByColumn
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		col, ok := menuItemOrdering[strings.TrimPrefix(part, "-")]
		if !ok {
			return nil, utils.FieldError("ordering", "Cannot order by \""+part+"\".")
		}
		out = append(out, clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: desc})
	}
	return out, nil
}

func (s *CatalogService) GetMenuItem(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.DB.Preload("Category").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Menu item not found.")
		}
		return nil, err
	}
	return &item, nil
}

func (s *CatalogService) CreateMenuItem(in MenuItemInput) (*models.MenuItem, error) {
	if err := s.validateMenuItem(in, false); err != nil {
		return nil, err
	}
	item := models.MenuItem{
		Title:      strings.TrimSpace(*in.Title),
		Price:      in.Price.Round(2),
		Inventory:  *in.Inventory,
		CategoryID: *in.CategoryID,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return nil, err
	}
	utils.InfoLogger.WithField("menu_item_id", item.ID).Info("menu item created")
	return s.GetMenuItem(item.ID)
}

func (s *CatalogService) UpdateMenuItem(id uint, in MenuItemInput, partial bool) (*models.MenuItem, error) {
	item, err := s.GetMenuItem(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateMenuItem(in, partial); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Price != nil {
		updates["price"] = in.Price.Round(2)
	}
	if in.Inventory != nil {
		updates["inventory"] = *in.Inventory
	}
	if in.CategoryID != nil {
		updates["category_id"] = *in.CategoryID
	}
	if len(updates) > 0 {
		if err := s.DB.Model(item).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	utils.InfoLogger.WithField("menu_item_id", id).Info("menu item updated")
	return s.GetMenuItem(id)
}

// DeleteMenuItem refuses to remove items that carts or orders still point at.
func (s *CatalogService) DeleteMenuItem(id uint) error {
	item, err := s.GetMenuItem(id)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.DB.Model(&models.CartLine{}).Where("menu_item_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs == 0 {
		if err := s.DB.Model(&models.OrderItem{}).Where("menu_item_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
	}
	if refs > 0 {
		return utils.Validation("Cannot delete a menu item that is referenced by carts or orders.")
	}

	if err := s.DB.Delete(item).Error; err != nil {
		return err
	}
	utils.InfoLogger.WithField("menu_item_id", id).Info("menu item deleted")
	return nil
}

func (s *CatalogService) validateMenuItem(in MenuItemInput, partial bool) error {
	fields := map[string]string{}
	const required = "This field is required."

	switch {
	case in.Title == nil:
		if !partial {
			fields["title"] = required
		}
	case strings.TrimSpace(*in.Title) == "":
		fields["title"] = "This field may not be blank."
	case len(*in.Title) > 255:
		fields["title"] = "Ensure this field has no more than 255 characters."
	}

	switch {
	case in.Price == nil:
		if !partial {
			fields["price"] = required
		}
	case !in.Price.IsPositive():
		fields["price"] = "Ensure this value is greater than 0."
	case !utils.HasCents(*in.Price):
		fields["price"] = "Ensure that there are no more than 2 decimal places."
	case in.Price.GreaterThanOrEqual(utils.MaxPrice):
		fields["price"] = "Ensure that there are no more than 4 digits before the decimal point."
	}

	switch {
	case in.Inventory == nil:
		if !partial {
			fields["inventory"] = required
		}
	case *in.Inventory < 0:
		fields["inventory"] = "Ensure this value is greater than or equal to 0."
	case *in.Inventory > 32767:
		fields["inventory"] = "Ensure this value is less than or equal to 32767."
	}

	if in.CategoryID == nil {
		if !partial {
			fields["category_id"] = required
		}
	} else {
		var n int64
		if err := s.DB.Model(&models.Category{}).Where("id = ?", *in.CategoryID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			fields["category_id"] = "Invalid pk - object does not exist."
		}
	}

	if len(fields) > 0 {
		return &utils.AppError{Kind: utils.KindValidation, Message: "Invalid input.", Fields: fields}
	}
	return nil
}

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	categories := []models.Category{}
	err := s.DB.Order("id").Find(&categories).Error
	return categories, err
}

func (s *CatalogService) CreateCategory(slug, title string) (*models.Category, error) {
	var n int64
	if err := s.DB.Model(&models.Category{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, utils.FieldError("slug", "category with this slug already exists.")
	}

	category := models.Category{Slug: slug, Title: title}
	if err := s.DB.Create(&category).Error; err != nil {
		return nil, err
	}
	utils.InfoLogger.WithField("slug", slug).Info("category created")
	return &category, nil
}
