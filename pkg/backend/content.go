package backend

import (
	"github.com/basalt-io/basalt-cms/pkg/db"
	"github.com/basalt-io/basalt-cms/pkg/model"
	"github.com/sirupsen/logrus"
)

func (b *backend) ListCategories() ([]db.Category, error) {
	return b.db.ListCategories()
}

func (b *backend) CreateCategory(req model.CategoryRequest) (db.Category, error) {
	logrus.Debugf("creating category %q", req.Slug)
	return b.db.CreateCategory(req)
}

func (b *backend) UpdateCategory(id uint, req model.CategoryUpdateRequest) (db.Category, error) {
	return b.db.UpdateCategory(id, req)
}

func (b *backend) DeleteCategory(id uint) error {
	return b.db.DeleteCategory(id)
}

func (b *backend) PublicPosts(opts model.PostListOptions) (PostPage, error) {
	posts, total, err := b.db.ListPublishedPosts(opts)
	if err != nil {
		return PostPage{}, err
	}
	return PostPage{
		Posts:      posts,
		Total:      total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages(total, opts.Limit),
	}, nil
}

func (b *backend) PublicPostBySlug(slug string) (db.Post, error) {
	return b.db.GetPublishedPostBySlug(slug)
}

func (b *backend) AdminPosts(page, limit int) (PostPage, error) {
	posts, total, err := b.db.ListPosts(page, limit)
	if err != nil {
		return PostPage{}, err
	}
	return PostPage{
		Posts:      posts,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (b *backend) GetPost(id uint) (db.Post, error) {
	return b.db.GetPost(id)
}

func (b *backend) CreatePost(req model.PostRequest) (db.Post, error) {
	logrus.Debugf("creating post %q", req.Slug)
	return b.db.CreatePost(req)
}

func (b *backend) UpdatePost(id uint, req model.PostUpdateRequest) (db.Post, error) {
	return b.db.UpdatePost(id, req)
}

func (b *backend) DeletePost(id uint) error {
	return b.db.DeletePost(id)
}
