package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/utils"
	"gorm.io/gorm"
)

func postSlugTaken(ctx context.Context, exclude *uuid.UUID) func(string) (bool, error) {
	return func(slug string) (bool, error) {
		q := config.DB.WithContext(ctx).Model(&models.BlogPost{}).Where("slug = ?", slug)
		if exclude != nil {
			q = q.Where("id <> ?", *exclude)
		}
		var n int64
		err := q.Count(&n).Error
		return n > 0, err
	}
}

func CreatePost(ctx context.Context, author *models.User, req models.BlogPostRequest) (*models.BlogPost, error) {
	slug, err := utils.UniqueSlug(utils.Slugify(firstNonEmpty(req.Slug, req.Title)), postSlugTaken(ctx, nil))
	if err != nil {
		return nil, err
	}
	post := &models.BlogPost{
		Title:      strings.TrimSpace(req.Title),
		Slug:       slug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Tags:       cleanList(req.Tags),
		Status:     firstNonEmpty(req.Status, models.PostStatusDraft),
	}
	if author != nil {
		post.AuthorID = &author.ID
		post.AuthorName = author.Name
	}
	if post.Status == models.PostStatusPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	if err := config.DB.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func GetPost(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := config.DB.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPublishedPost looks a published post up by slug.
func GetPublishedPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := config.DB.WithContext(ctx).
		First(&post, "slug = ? AND status = ?", strings.TrimSpace(slug), models.PostStatusPublished).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies req. published_at is set on the first publish only.
func UpdatePost(ctx context.Context, id uuid.UUID, req models.UpdateBlogPostRequest) (*models.BlogPost, error) {
	post, err := GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		slug, err := utils.UniqueSlug(utils.Slugify(*req.Slug), postSlugTaken(ctx, &post.ID))
		if err != nil {
			return nil, err
		}
		post.Slug = slug
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.CoverImage != nil {
		post.CoverImage = *req.CoverImage
	}
	if req.Tags != nil {
		post.Tags = cleanList(*req.Tags)
	}
	if req.Status != nil {
		post.Status = *req.Status
		if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
			now := time.Now().UTC()
			post.PublishedAt = &now
		}
	}
	if err := config.DB.WithContext(ctx).Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func DeletePost(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	post, err := GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := config.DB.WithContext(ctx).Delete(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

type PostFilter struct {
	Status string `form:"status"`
	Tag    string `form:"tag"`
	Query  string `form:"q"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// ListPosts lists posts newest first. publishedOnly restricts to the public view.
func ListPosts(ctx context.Context, f PostFilter, publishedOnly bool) ([]models.BlogPost, int64, int, int, error) {
	page, limit, offset := utils.NormalizePage(f.Page, f.Limit, MaxStorefrontPageSize)
	db := config.DB.WithContext(ctx)
	q := db.Model(&models.BlogPost{})
	if publishedOnly {
		q = q.Where("status = ?", models.PostStatusPublished)
	} else if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Tag); s != "" {
		cond, arg := tagCondition(db, s)
		q = q.Where(cond, arg)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, limit, err
	}
	var posts []models.BlogPost
	order := "created_at DESC"
	if publishedOnly {
		order = "published_at DESC"
	}
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, page, limit, err
	}
	return posts, total, page, limit, nil
}

func SetPostCover(ctx context.Context, id uuid.UUID, url string) (*models.BlogPost, error) {
	post, err := GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := config.DB.WithContext(ctx).Model(post).Update("cover_image", url).Error; err != nil {
		return nil, err
	}
	post.CoverImage = url
	return post, nil
}
