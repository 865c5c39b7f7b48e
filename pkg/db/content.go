package db

import (
	"strings"
	"time"

	"github.com/basalt-io/basalt-cms/pkg/model"
	"gorm.io/gorm"
)

func (d *database) ListCategories() ([]Category, error) {
	var categories []Category
	sql := d.db.Order("name asc").Find(&categories)
	return categories, sql.Error
}

func (d *database) GetCategory(id uint) (Category, error) {
	category := Category{}
	sql := d.db.Where("id = ?", id).Limit(1).Find(&category)
	if sql.Error != nil {
		return category, sql.Error
	}
	if category.ID == 0 {
		return category, model.NewNotFound("category")
	}
	return category, nil
}

func (d *database) CreateCategory(req model.CategoryRequest) (Category, error) {
	var category Category
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := checkCategoryUnique(tx, req.Slug, req.Name, 0); err != nil {
			return err
		}

		category = Category{
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
		}
		return tx.Create(&category).Error
	})
	return category, err
}

func (d *database) UpdateCategory(id uint, req model.CategoryUpdateRequest) (Category, error) {
	var category Category
	err := d.db.Transaction(func(tx *gorm.DB) error {
		sql := tx.Where("id = ?", id).Limit(1).Find(&category)
		if sql.Error != nil {
			return sql.Error
		}
		if category.ID == 0 {
			return model.NewNotFound("category")
		}

		// Uniqueness is only re-checked for fields that actually change.
		newSlug, newName := "", ""
		if req.Slug != nil && *req.Slug != category.Slug {
			newSlug = *req.Slug
		}
		if req.Name != nil && *req.Name != category.Name {
			newName = *req.Name
		}
		if newSlug != "" || newName != "" {
			if err := checkCategoryUnique(tx, newSlug, newName, category.ID); err != nil {
				return err
			}
		}

		if req.Name != nil {
			category.Name = *req.Name
		}
		if req.Slug != nil {
			category.Slug = *req.Slug
		}
		if req.Description != nil {
			category.Description = *req.Description
		}

		return tx.Save(&category).Error
	})
	return category, err
}

func (d *database) DeleteCategory(id uint) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		category := Category{}
		sql := tx.Where("id = ?", id).Limit(1).Find(&category)
		if sql.Error != nil {
			return sql.Error
		}
		if category.ID == 0 {
			return model.NewNotFound("category")
		}

		var referencing int64
		if err := tx.Model(&Post{}).Where("category_id = ?", id).Count(&referencing).Error; err != nil {
			return err
		}
		if referencing > 0 {
			return &model.ConflictError{
				Field:         "category",
				BlockingCount: referencing,
				Message:       "cannot delete category \"" + category.Name + "\": posts still reference it",
			}
		}

		return tx.Delete(&category).Error
	})
}

// checkCategoryUnique verifies slug and name independently; either
// collision alone rejects the write. Empty strings skip their check.
func checkCategoryUnique(tx *gorm.DB, slug, name string, excludeID uint) error {
	if slug != "" {
		var n int64
		sql := tx.Model(&Category{}).Where("slug = ? and id <> ?", slug, excludeID).Count(&n)
		if sql.Error != nil {
			return sql.Error
		}
		if n > 0 {
			return model.NewConflict("slug", "category slug %q already exists", slug)
		}
	}
	if name != "" {
		var n int64
		sql := tx.Model(&Category{}).Where("name = ? and id <> ?", name, excludeID).Count(&n)
		if sql.Error != nil {
			return sql.Error
		}
		if n > 0 {
			return model.NewConflict("name", "category name %q already exists", name)
		}
	}
	return nil
}

func (d *database) ListPublishedPosts(opts model.PostListOptions) ([]Post, int64, error) {
	query := d.db.Model(&Post{}).Where("is_published = ?", true)

	if opts.CategoryID != 0 {
		query = query.Where("category_id = ?", opts.CategoryID)
	} else if opts.Category != "" {
		// Loose, case-insensitive match against the category display
		// name. An unknown name leaves the listing unfiltered.
		category := Category{}
		sql := d.db.Where("lower(name) = ?", strings.ToLower(opts.Category)).Limit(1).Find(&category)
		if sql.Error != nil {
			return nil, 0, sql.Error
		}
		if category.ID != 0 {
			query = query.Where("category_id = ?", category.ID)
		}
	}

	if opts.Search != "" {
		like := "%" + opts.Search + "%"
		query = query.Where("title LIKE ? OR content LIKE ? OR excerpt LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []Post
	sql := query.Preload("Category").
		Order("created_at desc").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&posts)
	return posts, total, sql.Error
}

func (d *database) GetPublishedPostBySlug(slug string) (Post, error) {
	var post Post
	err := d.db.Transaction(func(tx *gorm.DB) error {
		sql := tx.Preload("Category").Where("slug = ? and is_published = ?", slug, true).Limit(1).Find(&post)
		if sql.Error != nil {
			return sql.Error
		}
		if post.ID == 0 {
			// Unpublished is indistinguishable from missing here.
			return model.NewNotFound("post")
		}

		// Single UPDATE so concurrent fetches don't lose increments.
		// UpdateColumn also leaves updated_at alone.
		sql = tx.Model(&Post{}).Where("id = ?", post.ID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1"))
		if sql.Error != nil {
			return sql.Error
		}
		post.ViewCount++
		return nil
	})
	return post, err
}

func (d *database) ListPosts(page, limit int) ([]Post, int64, error) {
	var total int64
	if err := d.db.Model(&Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []Post
	sql := d.db.Preload("Category").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts)
	return posts, total, sql.Error
}

func (d *database) GetPost(id uint) (Post, error) {
	post := Post{}
	sql := d.db.Preload("Category").Where("id = ?", id).Limit(1).Find(&post)
	if sql.Error != nil {
		return post, sql.Error
	}
	if post.ID == 0 {
		return post, model.NewNotFound("post")
	}
	return post, nil
}

func (d *database) CreatePost(req model.PostRequest) (Post, error) {
	var post Post
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := checkPostSlugUnique(tx, req.Slug, 0); err != nil {
			return err
		}

		post = Post{
			Title:        req.Title,
			Slug:         req.Slug,
			Content:      req.Content,
			Excerpt:      req.Excerpt,
			ThumbnailURL: req.ThumbnailURL,
			CategoryID:   req.CategoryID,
			Tags:         req.Tags,
			IsPublished:  req.IsPublished,
		}
		return tx.Create(&post).Error
	})
	return post, err
}

func (d *database) UpdatePost(id uint, req model.PostUpdateRequest) (Post, error) {
	var post Post
	err := d.db.Transaction(func(tx *gorm.DB) error {
		sql := tx.Where("id = ?", id).Limit(1).Find(&post)
		if sql.Error != nil {
			return sql.Error
		}
		if post.ID == 0 {
			return model.NewNotFound("post")
		}

		if req.Slug != nil && *req.Slug != post.Slug {
			if err := checkPostSlugUnique(tx, *req.Slug, post.ID); err != nil {
				return err
			}
		}

		// Patch semantics: only supplied fields change.
		if req.Title != nil {
			post.Title = *req.Title
		}
		if req.Slug != nil {
			post.Slug = *req.Slug
		}
		if req.Content != nil {
			post.Content = *req.Content
		}
		if req.Excerpt != nil {
			post.Excerpt = *req.Excerpt
		}
		if req.ThumbnailURL != nil {
			post.ThumbnailURL = *req.ThumbnailURL
		}
		if req.CategoryID != nil {
			if *req.CategoryID == 0 {
				post.CategoryID = nil
			} else {
				post.CategoryID = req.CategoryID
			}
		}
		if req.Tags != nil {
			post.Tags = *req.Tags
		}
		if req.IsPublished != nil {
			post.IsPublished = *req.IsPublished
		}

		return tx.Save(&post).Error
	})
	return post, err
}

func (d *database) DeletePost(id uint) error {
	sql := d.db.Delete(&Post{}, id)
	if sql.Error != nil {
		return sql.Error
	}
	if sql.RowsAffected == 0 {
		return model.NewNotFound("post")
	}
	return nil
}

func checkPostSlugUnique(tx *gorm.DB, slug string, excludeID uint) error {
	var n int64
	sql := tx.Model(&Post{}).Where("slug = ? and id <> ?", slug, excludeID).Count(&n)
	if sql.Error != nil {
		return sql.Error
	}
	if n > 0 {
		return model.NewConflict("slug", "post slug %q already exists", slug)
	}
	return nil
}

// CountPostsBetween counts posts created in [from, to]. A zero bound
// is unbounded on that side.
func (d *database) CountPostsBetween(from, to time.Time) (int64, error) {
	query := d.db.Model(&Post{})
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at <= ?", to)
	}
	var n int64
	sql := query.Count(&n)
	return n, sql.Error
}

func (d *database) CountPublishedPosts() (int64, error) {
	var n int64
	sql := d.db.Model(&Post{}).Where("is_published = ?", true).Count(&n)
	return n, sql.Error
}

func (d *database) SumViewCounts() (int64, error) {
	var total *int64
	sql := d.db.Model(&Post{}).Select("sum(view_count)").Scan(&total)
	if sql.Error != nil || total == nil {
		return 0, sql.Error
	}
	return *total, nil
}

func (d *database) RecentPosts(limit int) ([]Post, error) {
	var posts []Post
	sql := d.db.Order("created_at desc").Limit(limit).Find(&posts)
	return posts, sql.Error
}
