package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/GlennSimanjorang/sarpras/internal/api"
	"github.com/GlennSimanjorang/sarpras/internal/domain"
)

// CatalogService covers the plain CRUD collections: categories, items and
// users. Every mutation is fire-and-refetch; nothing is patched locally.
type CatalogService struct {
	API *api.Client
}

func NewCatalogService(client *api.Client) *CatalogService {
	return &CatalogService{API: client}
}

// ---------- categories ----------

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	var rows []domain.Category
	if err := s.API.GetJSON(ctx, "/api/admin/categories", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, slug string) error {
	return s.API.PostJSON(ctx, "/api/admin/categories", map[string]string{"name": name, "slug": slug}, nil)
}

// UpdateCategory addresses the record by its immutable slug.
func (s *CatalogService) UpdateCategory(ctx context.Context, slug, name string) error {
	return s.API.PutJSON(ctx, "/api/admin/categories/"+slug, map[string]string{"name": name, "slug": slug}, nil)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	return s.API.Delete(ctx, "/api/admin/categories/"+slug)
}

// ---------- items ----------

func (s *CatalogService) Items(ctx context.Context) ([]domain.Item, error) {
	var rows []domain.Item
	if err := s.API.GetJSON(ctx, "/api/admin/items", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateItem posts the multipart form the backend expects: name, stock,
// category_slugs and the image file.
func (s *CatalogService) CreateItem(ctx context.Context, name string, stock int, categorySlug string, image *multipart.FileHeader) error {
	return s.API.PostMultipart(ctx, "/api/admin/items", func(w *multipart.Writer) error {
		if err := w.WriteField("name", name); err != nil {
			return err
		}
		if err := w.WriteField("stock", strconv.Itoa(stock)); err != nil {
			return err
		}
		if err := w.WriteField("category_slugs", categorySlug); err != nil {
			return err
		}
		if image == nil {
			return nil
		}
		return copyFilePart(w, "image", image)
	})
}

func (s *CatalogService) UpdateItem(ctx context.Context, sku, name string, stock int, categorySlug string) error {
	body := map[string]any{"name": name, "stock": stock, "category_slugs": categorySlug}
	return s.API.PutJSON(ctx, "/api/admin/items/"+sku, body, nil)
}

func (s *CatalogService) DeleteItem(ctx context.Context, sku string) error {
	return s.API.Delete(ctx, "/api/admin/items/"+sku)
}

func (s *CatalogService) ChangeItemImage(ctx context.Context, sku string, image *multipart.FileHeader) error {
	if image == nil {
		return fmt.Errorf("image file is required")
	}
	return s.API.PostMultipart(ctx, "/api/admin/items/"+sku+"/change-image", func(w *multipart.Writer) error {
		return copyFilePart(w, "image", image)
	})
}

func copyFilePart(w *multipart.Writer, field string, fh *multipart.FileHeader) error {
	part, err := w.CreateFormFile(field, fh.Filename)
	if err != nil {
		return err
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(part, f)
	return err
}

// ---------- users ----------

func (s *CatalogService) Users(ctx context.Context) ([]domain.User, error) {
	var rows []domain.User
	if err := s.API.GetJSON(ctx, "/api/admin/users", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *CatalogService) CreateUser(ctx context.Context, username, password string) error {
	return s.API.PostJSON(ctx, "/api/admin/users", map[string]string{"username": username, "password": password}, nil)
}

func (s *CatalogService) UpdateUser(ctx context.Context, id int, username string) error {
	return s.API.PutJSON(ctx, fmt.Sprintf("/api/admin/users/%d", id), map[string]string{"username": username}, nil)
}

func (s *CatalogService) DeleteUser(ctx context.Context, id int) error {
	return s.API.Delete(ctx, fmt.Sprintf("/api/admin/users/%d", id))
}
