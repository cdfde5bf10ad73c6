// Package admin holds the back-office workflows: product mutations with image
// handling, order status updates and account settings.
package admin

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/MikeMC777/khattak-mart/internal/catalog"
	"github.com/MikeMC777/khattak-mart/internal/media"
	"github.com/MikeMC777/khattak-mart/internal/result"
	"github.com/MikeMC777/khattak-mart/internal/validation"
)

const defaultImageHint = "product package"

// Upload is a file received from a form. A nil *Upload means no file was sent.
type Upload struct {
	Filename string
	Body     io.Reader
}

type Products struct {
	repo   catalog.Repository
	images media.Store
	cats   *catalog.Categories
	view   *catalog.Cached
	logger *zap.Logger
}

func NewProducts(repo catalog.Repository, images media.Store, cats *catalog.Categories, view *catalog.Cached, logger *zap.Logger) *Products {
	return &Products{repo: repo, images: images, cats: cats, view: view, logger: logger}
}

func (p *Products) List(ctx context.Context) ([]catalog.Product, error) {
	return p.repo.List(ctx)
}

// release deletes an image we no longer reference. Failures are logged only.
func (p *Products) release(ctx context.Context, ref string) {
	if ref == "" || !media.Owns(ref) {
		return
	}
	if err := p.images.Delete(ctx, ref); err != nil {
		p.logger.Error("Failed to delete product image", zap.String("image", ref), zap.Error(err))
	}
}

func (p *Products) inputError(in catalog.Input, imageRequired bool, img *Upload) error {
	err := in.Validate(p.cats)
	if err != nil && !validation.IsValidation(err) {
		return err
	}
	verr, _ := err.(*validation.Error)
	if verr == nil {
		verr = &validation.Error{}
	}
	if imageRequired && img == nil {
		verr.Add("image", "Image is required.")
	}
	return verr.OrNil()
}

func (p *Products) Create(ctx context.Context, in catalog.Input, img *Upload) result.Result[catalog.Product] {
	if err := p.inputError(in, true, img); err != nil {
		return p.invalidOrFail(err, "Failed to add product.")
	}
	ref, err := p.images.Save(ctx, img.Filename, img.Body)
	if errors.Is(err, media.ErrEmpty) {
		verr := &validation.Error{}
		verr.Add("image", "Image is required.")
		return result.Invalid[catalog.Product](verr)
	}
	if err != nil {
		p.logger.Error("Failed to store product image", zap.Error(err))
		return result.Fail[catalog.Product]("Failed to add product.")
	}

	prod, err := p.repo.Add(ctx, in, catalog.Image{ImageURL: ref, ImageHint: defaultImageHint})
	if err != nil {
		p.release(ctx, ref)
		return p.invalidOrFail(err, "Failed to add product.")
	}
	p.view.Invalidate()
	p.logger.Info("Product added", zap.String("product_id", prod.ID))
	return result.OK(prod.Name+" has been added.", prod)
}

// Update keeps the current image unless img is set; a replaced image is
// released only after the product points at the new one.
func (p *Products) Update(ctx context.Context, id string, in catalog.Input, img *Upload) result.Result[catalog.Product] {
	if err := p.inputError(in, false, img); err != nil {
		return p.invalidOrFail(err, "Failed to update product.")
	}
	_, ok, err := p.repo.Get(ctx, id)
	if err != nil {
		p.logger.Error("Failed to load product", zap.String("product_id", id), zap.Error(err))
		return result.Fail[catalog.Product]("Failed to update product.")
	}
	if !ok {
		return result.NotFound[catalog.Product]("Product not found.")
	}

	var newImage *catalog.Image
	if img != nil {
		ref, err := p.images.Save(ctx, img.Filename, img.Body)
		switch {
		case errors.Is(err, media.ErrEmpty):
			// an empty file input means "keep the current image"
		case err != nil:
			p.logger.Error("Failed to store product image", zap.Error(err))
			return result.Fail[catalog.Product]("Failed to update product.")
		default:
			newImage = &catalog.Image{ImageURL: ref}
		}
	}

	prod, prev, err := p.repo.Update(ctx, id, in, newImage)
	if err != nil {
		if newImage != nil {
			p.release(ctx, newImage.ImageURL)
		}
		if errors.Is(err, catalog.ErrNotFound) {
			return result.NotFound[catalog.Product]("Product not found.")
		}
		return p.invalidOrFail(err, "Failed to update product.")
	}
	if newImage != nil && prev.ImageURL != newImage.ImageURL {
		p.release(ctx, prev.ImageURL)
	}
	p.view.Invalidate()
	p.logger.Info("Product updated", zap.String("product_id", id))
	return result.OK(prod.Name+" has been updated.", prod)
}

func (p *Products) Delete(ctx context.Context, id string) result.Result[catalog.Product] {
	prod, err := p.repo.Delete(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return result.NotFound[catalog.Product]("Product not found")
	}
	if err != nil {
		p.logger.Error("Failed to delete product", zap.String("product_id", id), zap.Error(err))
		return result.Fail[catalog.Product]("Failed to delete product")
	}
	p.release(ctx, prod.Image.ImageURL)
	p.view.Invalidate()
	p.logger.Info("Product deleted", zap.String("product_id", id))
	return result.OK("Product deleted successfully", prod)
}

func (p *Products) invalidOrFail(err error, msg string) result.Result[catalog.Product] {
	if validation.IsValidation(err) {
		return result.Invalid[catalog.Product](err)
	}
	p.logger.Error(msg, zap.Error(err))
	return result.Fail[catalog.Product](msg)
}
