package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	category_cache "github.com/online-bazar/bazar-backend/cache"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MaxStorefrontPageSize = 50
	relatedItemsLimit     = 4
)

var itemSorts = map[string]string{
	"":           "created_at DESC",
	"newest":     "created_at DESC",
	"price_asc":  "price ASC",
	"price_desc": "price DESC",
	"popular":    "views DESC",
	"rating":     "rating_avg DESC, rating_count DESC",
}

// ═══════════════════════════════════════════════════════════
// Categories
// ═══════════════════════════════════════════════════════════

// activeCategories returns every active category, from cache when fresh.
func activeCategories(ctx context.Context) ([]models.Category, error) {
	if cats, ok := category_cache.GetFlat(); ok {
		return cats, nil
	}
	var cats []models.Category
	if err := config.DB.WithContext(ctx).
		Where("status = ?", models.CategoryStatusActive).
		Order("sort_order ASC, name ASC").
		Find(&cats).Error; err != nil {
		return nil, err
	}
	category_cache.SetFlat(cats)
	return cats, nil
}

// descendantIDs returns root and every category below it.
func descendantIDs(cats []models.Category, root uuid.UUID) []uuid.UUID {
	children := make(map[uuid.UUID][]uuid.UUID)
	for _, c := range cats {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}
	out := []uuid.UUID{root}
	seen := map[uuid.UUID]bool{root: true}
	for i := 0; i < len(out); i++ {
		for _, child := range children[out[i]] {
			if !seen[child] {
				seen[child] = true
				out = append(out, child)
			}
		}
	}
	return out
}

func matchCategory(cats []models.Category, slugOrID string) *models.Category {
	id, idErr := uuid.Parse(slugOrID)
	for i := range cats {
		if cats[i].Slug == slugOrID || (idErr == nil && cats[i].ID == id) {
			return &cats[i]
		}
	}
	return nil
}

// FindCategory looks up an active category by slug or id.
func FindCategory(ctx context.Context, slugOrID string) (*models.Category, error) {
	cats, err := activeCategories(ctx)
	if err != nil {
		return nil, err
	}
	if c := matchCategory(cats, strings.TrimSpace(slugOrID)); c != nil {
		return c, nil
	}
	return nil, ErrNotFound
}

// BuildCategoryTree nests cats under their parents and rolls item counts up
// to every ancestor. Categories whose parent is missing become roots.
func BuildCategoryTree(cats []models.Category, counts map[uuid.UUID]int) []models.CategoryNode {
	byID := make(map[uuid.UUID]models.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	children := make(map[uuid.UUID][]models.Category)
	var roots []models.Category
	for _, c := range cats {
		if c.ParentID != nil {
			if _, ok := byID[*c.ParentID]; ok {
				children[*c.ParentID] = append(children[*c.ParentID], c)
				continue
			}
		}
		roots = append(roots, c)
	}

	var build func(c models.Category, depth int) models.CategoryNode
	build = func(c models.Category, depth int) models.CategoryNode {
		node := models.CategoryNode{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			ParentID:    c.ParentID,
			Status:      c.Status,
			ItemCount:   counts[c.ID],
		}
		if depth > 16 {
			return node
		}
		for _, child := range children[c.ID] {
			cn := build(child, depth+1)
			node.ItemCount += cn.ItemCount
			node.Children = append(node.Children, cn)
		}
		return node
	}

	out := make([]models.CategoryNode, 0, len(roots))
	for _, r := range roots {
		out = append(out, build(r, 0))
	}
	return out
}

// CategoryTree returns the storefront category tree.
func CategoryTree(ctx context.Context) ([]models.CategoryNode, error) {
	if roots, ok := category_cache.GetTree(); ok {
		return roots, nil
	}

	cats, err := activeCategories(ctx)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		CategoryID uuid.UUID
		Count      int
	}
	if err := config.DB.WithContext(ctx).Model(&models.Item{}).
		Select("category_id, COUNT(*) AS count").
		Where("status = ? AND category_id IS NOT NULL", models.ItemStatusActive).
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}

	roots := BuildCategoryTree(cats, counts)
	category_cache.SetTree(roots)
	return roots, nil
}

// ListCategories returns every category for the admin, optionally filtered by
// status, with the number of items assigned to each.
func ListCategories(ctx context.Context, status string) ([]models.CategoryNode, error) {
	q := config.DB.WithContext(ctx).Order("sort_order ASC, name ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var cats []models.Category
	if err := q.Find(&cats).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		CategoryID uuid.UUID
		Count      int
	}
	if err := config.DB.WithContext(ctx).Model(&models.Item{}).
		Select("category_id, COUNT(*) AS count").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}
	return BuildCategoryTree(cats, counts), nil
}

func categorySlugTaken(ctx context.Context, exclude *uuid.UUID) func(string) (bool, error) {
	return func(slug string) (bool, error) {
		q := config.DB.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", slug)
		if exclude != nil {
			q = q.Where("id <> ?", *exclude)
		}
		var n int64
		err := q.Count(&n).Error
		return n > 0, err
	}
}

func CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	base := utils.Slugify(firstNonEmpty(req.Slug, req.Name))
	slug, err := utils.UniqueSlug(base, categorySlugTaken(ctx, nil))
	if err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		var n int64
		if err := config.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", *req.ParentID).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, NewValidationError("parent_id", "parent category does not exist")
		}
	}
	c := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		Status:      firstNonEmpty(req.Status, models.CategoryStatusActive),
		SortOrder:   req.SortOrder,
	}
	if err := config.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	category_cache.Invalidate()
	return c, nil
}

func UpdateCategory(ctx context.Context, id uuid.UUID, req models.UpdateCategoryRequest) (*models.Category, error) {
	var c models.Category
	if err := config.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		slug, err := utils.UniqueSlug(utils.Slugify(*req.Slug), categorySlugTaken(ctx, &c.ID))
		if err != nil {
			return nil, err
		}
		c.Slug = slug
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.ParentID != nil {
		if *req.ParentID == c.ID {
			return nil, NewValidationError("parent_id", "a category cannot be its own parent")
		}
		var all []models.Category
		if err := config.DB.WithContext(ctx).Find(&all).Error; err != nil {
			return nil, err
		}
		for _, d := range descendantIDs(all, c.ID) {
			if d == *req.ParentID {
				return nil, NewValidationError("parent_id", "a category cannot move under its own descendant")
			}
		}
		c.ParentID = req.ParentID
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}

	if err := config.DB.WithContext(ctx).Save(&c).Error; err != nil {
		return nil, err
	}
	category_cache.Invalidate()
	return &c, nil
}

// DeleteCategory refuses while items or sub-categories still reference it.
func DeleteCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	db := config.DB.WithContext(ctx)
	var c models.Category
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var items, subs int64
	if err := db.Model(&models.Item{}).Where("category_id = ?", id).Count(&items).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Category{}).Where("parent_id = ?", id).Count(&subs).Error; err != nil {
		return nil, err
	}
	if items > 0 || subs > 0 {
		return nil, ErrConflict
	}

	if err := db.Delete(&c).Error; err != nil {
		return nil, err
	}
	category_cache.Invalidate()
	return &c, nil
}

// ═══════════════════════════════════════════════════════════
// Items
// ═══════════════════════════════════════════════════════════

func tagCondition(db *gorm.DB, tag string) (string, any) {
	if db.Dialector.Name() == "postgres" {
		return "tags @> ?::jsonb", `["` + strings.ReplaceAll(tag, `"`, ``) + `"]`
	}
	return "tags LIKE ?", `%"` + tag + `"%`
}

// ListStorefrontItems returns active items matching f.
func ListStorefrontItems(ctx context.Context, f models.ItemFilter) ([]models.Item, int64, int, int, error) {
	page, limit, offset := utils.NormalizePage(f.Page, f.Limit, MaxStorefrontPageSize)
	db := config.DB.WithContext(ctx)
	q := db.Model(&models.Item{}).Where("status = ?", models.ItemStatusActive)

	if s := strings.TrimSpace(f.Category); s != "" {
		cats, err := activeCategories(ctx)
		if err != nil {
			return nil, 0, page, limit, err
		}
		c := matchCategory(cats, s)
		if c == nil {
			return []models.Item{}, 0, page, limit, nil
		}
		q = q.Where("category_id IN ?", descendantIDs(cats, c.ID))
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.InStock {
		q = q.Where("stock > 0")
	}
	if f.Featured {
		q = q.Where("featured = ?", true)
	}
	if s := strings.TrimSpace(f.Tag); s != "" {
		cond, arg := tagCondition(db, s)
		q = q.Where(cond, arg)
	}

	order, ok := itemSorts[f.Sort]
	if !ok {
		return nil, 0, page, limit, NewValidationError("sort", "must be one of newest, price_asc, price_desc, popular, rating")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, limit, err
	}

	var items []models.Item
	if err := q.Order(order).Order("id").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, page, limit, err
	}
	return items, total, page, limit, nil
}

func findItem(db *gorm.DB, slugOrID string, activeOnly bool) (*models.Item, error) {
	q := db.Preload("Category")
	if activeOnly {
		q = q.Where("status = ?", models.ItemStatusActive)
	}
	if id, err := uuid.Parse(slugOrID); err == nil {
		// A slug may itself be UUID-shaped
		q = q.Where("(id = ? OR slug = ?)", id, slugOrID)
	} else {
		q = q.Where("slug = ?", slugOrID)
	}
	var item models.Item
	if err := q.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetStorefrontItem returns an active item with its review summary and related
// items, and counts the view.
func GetStorefrontItem(ctx context.Context, slugOrID string) (*models.ItemDetailResponse, error) {
	db := config.DB.WithContext(ctx)
	item, err := findItem(db, strings.TrimSpace(slugOrID), true)
	if err != nil {
		return nil, err
	}

	if err := db.Model(&models.Item{}).Where("id = ?", item.ID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		config.Log.Warn("[catalog.item] failed to count view", "item_id", item.ID, "error", err)
	} else {
		item.Views++
	}

	resp := &models.ItemDetailResponse{
		Item:    *item,
		Reviews: models.ReviewSummary{Average: item.RatingAvg, Count: item.RatingCount, Recent: []models.ReviewDTO{}},
		Related: []models.Item{},
	}

	var recent []models.Review
	if err := db.Where("item_id = ? AND status = ?", item.ID, models.ReviewStatusApproved).
		Order("created_at DESC").Limit(3).Find(&recent).Error; err != nil {
		return nil, err
	}
	for i := range recent {
		resp.Reviews.Recent = append(resp.Reviews.Recent, recent[i].ToDTO())
	}

	if item.CategoryID != nil {
		if err := db.Where("category_id = ? AND status = ? AND id <> ?", *item.CategoryID, models.ItemStatusActive, item.ID).
			Order("rating_avg DESC, views DESC").Limit(relatedItemsLimit).
			Find(&resp.Related).Error; err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// ═══════════════════════════════════════════════════════════
// Item administration
// ═══════════════════════════════════════════════════════════

type AdminItemFilter struct {
	Query      string `form:"q"`
	Status     string `form:"status"`
	CategoryID string `form:"category_id"`
	LowStock   int    `form:"low_stock"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

func ListAdminItems(ctx context.Context, f AdminItemFilter) ([]models.Item, int64, int, int, error) {
	page, limit, offset := utils.NormalizePage(f.Page, f.Limit, utils.MaxPageSize)
	q := config.DB.WithContext(ctx).Model(&models.Item{})
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(slug) LIKE ?)", like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if id, err := uuid.Parse(f.CategoryID); err == nil {
		q = q.Where("category_id = ?", id)
	}
	if f.LowStock > 0 {
		q = q.Where("stock <= ?", f.LowStock)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, limit, err
	}
	var items []models.Item
	if err := q.Preload("Category").Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, page, limit, err
	}
	return items, total, page, limit, nil
}

func GetAdminItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return findItem(config.DB.WithContext(ctx), id.String(), false)
}

func itemSlugTaken(ctx context.Context, exclude *uuid.UUID) func(string) (bool, error) {
	return func(slug string) (bool, error) {
		q := config.DB.WithContext(ctx).Model(&models.Item{}).Where("slug = ?", slug)
		if exclude != nil {
			q = q.Where("id <> ?", *exclude)
		}
		var n int64
		err := q.Count(&n).Error
		return n > 0, err
	}
}

func cleanList(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func CreateItem(ctx context.Context, req models.ItemRequest) (*models.Item, error) {
	if req.CompareAtPrice != nil && *req.CompareAtPrice > 0 && *req.CompareAtPrice < req.Price {
		return nil, NewValidationError("compare_at_price", "must not be lower than price")
	}
	slug, err := utils.UniqueSlug(utils.Slugify(firstNonEmpty(req.Slug, req.Name)), itemSlugTaken(ctx, nil))
	if err != nil {
		return nil, err
	}
	item := &models.Item{
		Name:           strings.TrimSpace(req.Name),
		Slug:           slug,
		Description:    req.Description,
		Price:          round2(req.Price),
		CompareAtPrice: req.CompareAtPrice,
		Stock:          req.Stock,
		CategoryID:     req.CategoryID,
		Status:         firstNonEmpty(req.Status, models.ItemStatusDraft),
		Featured:       req.Featured,
	}
	item.Media = newItemMedia(req.Media)
	item.Tags = cleanList(req.Tags)
	item.Sizes = cleanList(req.Sizes)
	item.Colors = cleanList(req.Colors)

	if err := config.DB.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	category_cache.Invalidate()
	return item, nil
}

func UpdateItem(ctx context.Context, id uuid.UUID, req models.UpdateItemRequest) (*models.Item, error) {
	item, err := GetAdminItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		slug, err := utils.UniqueSlug(utils.Slugify(*req.Slug), itemSlugTaken(ctx, &item.ID))
		if err != nil {
			return nil, err
		}
		item.Slug = slug
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = round2(*req.Price)
	}
	if req.CompareAtPrice != nil {
		item.CompareAtPrice = req.CompareAtPrice
	}
	if req.CategoryID != nil {
		item.CategoryID = req.CategoryID
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.Media != nil {
		item.Media = newItemMedia(*req.Media)
	}
	if req.Tags != nil {
		item.Tags = cleanList(*req.Tags)
	}
	if req.Sizes != nil {
		item.Sizes = cleanList(*req.Sizes)
	}
	if req.Colors != nil {
		item.Colors = cleanList(*req.Colors)
	}
	if req.Featured != nil {
		item.Featured = *req.Featured
	}
	if item.CompareAtPrice != nil && *item.CompareAtPrice > 0 && *item.CompareAtPrice < item.Price {
		return nil, NewValidationError("compare_at_price", "must not be lower than price")
	}

	item.Category = nil
	if err := config.DB.WithContext(ctx).Omit("Category").Save(item).Error; err != nil {
		return nil, err
	}
	category_cache.Invalidate()
	return item, nil
}

// DeleteItem removes an item, or archives it when orders reference it.
// archived reports which happened.
func DeleteItem(ctx context.Context, id uuid.UUID) (item *models.Item, archived bool, err error) {
	db := config.DB.WithContext(ctx)
	item, err = GetAdminItem(ctx, id)
	if err != nil {
		return nil, false, err
	}

	var refs int64
	if err := db.Model(&models.OrderItem{}).Where("item_id = ?", id).Count(&refs).Error; err != nil {
		return nil, false, err
	}
	if refs > 0 {
		if err := db.Model(&models.Item{}).Where("id = ?", id).Update("status", models.ItemStatusArchived).Error; err != nil {
			return nil, false, err
		}
		item.Status = models.ItemStatusArchived
		archived = true
	} else {
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("item_id = ?", id).Delete(&models.Review{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Item{}, "id = ?", id).Error
		})
		if err != nil {
			return nil, false, err
		}
	}
	category_cache.Invalidate()
	return item, archived, nil
}

// UpdateStock sets stock absolutely or by delta. Deltas never take stock
// below zero.
func UpdateStock(ctx context.Context, id uuid.UUID, req models.UpdateStockRequest) (*models.Item, error) {
	if (req.Stock == nil) == (req.Delta == nil) {
		return nil, NewValidationError("stock", "provide exactly one of stock or delta")
	}
	db := config.DB.WithContext(ctx)

	var res *gorm.DB
	if req.Stock != nil {
		res = db.Model(&models.Item{}).Where("id = ?", id).UpdateColumn("stock", *req.Stock)
	} else {
		d := *req.Delta
		res = db.Model(&models.Item{}).Where("id = ? AND stock + ? >= 0", id, d).
			UpdateColumn("stock", gorm.Expr("stock + ?", d))
	}
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := GetAdminItem(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInsufficientStock
	}
	category_cache.Invalidate()
	return GetAdminItem(ctx, id)
}

// AddItemImage appends url to the gallery, promoting it to primary when the
// item has none.
func AddItemImage(ctx context.Context, id uuid.UUID, url string, primary bool) (*models.Item, error) {
	item, err := GetAdminItem(ctx, id)
	if err != nil {
		return nil, err
	}
	m := item.Media.Data()
	if primary || m.Primary == "" {
		if m.Primary != "" {
			m.Gallery = append([]string{m.Primary}, m.Gallery...)
		}
		m.Primary = url
	} else {
		m.Gallery = append(m.Gallery, url)
	}
	item.Media = newItemMedia(m)
	if err := config.DB.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).
		UpdateColumn("media", item.Media).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func newItemMedia(m models.ItemMedia) datatypes.JSONType[models.ItemMedia] {
	m.Primary = strings.TrimSpace(m.Primary)
	m.Gallery = cleanList(m.Gallery)
	return datatypes.NewJSONType(m)
}
