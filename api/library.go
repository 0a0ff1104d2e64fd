package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// Picture fetches one picture by ID.
func (c *Client) Picture(ctx context.Context, id string) (lab.Picture, error) {
	var dto pictureDTO
	if err := c.do(ctx, http.MethodGet, "/picture/"+url.PathEscape(id), nil, &dto); err != nil {
		return lab.Picture{}, err
	}
	return dto.toPicture(), nil
}

// ListPictures returns one page of pictures.
func (c *Client) ListPictures(ctx context.Context, query lab.LibraryQuery) (lab.Page[lab.Picture], error) {
	var dto pageDTO[pictureDTO]
	body := pageRequestDTO{
		Current:  query.Current,
		PageSize: query.PageSize,
		Category: query.Category,
		Name:     query.Name,
	}
	if err := c.do(ctx, http.MethodPost, "/picture/list/page", body, &dto); err != nil {
		return lab.Page[lab.Picture]{}, err
	}
	return toPage(dto, pictureDTO.toPicture), nil
}

// PictureCategories returns the known picture categories.
func (c *Client) PictureCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/picture/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// DeletePicture removes one picture.
func (c *Client) DeletePicture(ctx context.Context, id string) error {
	body := struct {
		ID string `json:"id"`
	}{ID: id}
	return c.do(ctx, http.MethodPost, "/picture/delete", body, nil)
}

// UploadPicture uploads an image file and returns the stored picture.
// This is a thin call over the backend's multipart endpoint; validation
// and resizing happen server-side.
func (c *Client) UploadPicture(ctx context.Context, name, fileName string, file io.Reader) (lab.Picture, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return lab.Picture{}, fmt.Errorf("api: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return lab.Picture{}, fmt.Errorf("api: read file: %w", err)
	}
	if name != "" {
		if err := mw.WriteField("name", name); err != nil {
			return lab.Picture{}, fmt.Errorf("api: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return lab.Picture{}, fmt.Errorf("api: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/picture/upload", &buf)
	if err != nil {
		return lab.Picture{}, fmt.Errorf("api: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return lab.Picture{}, fmt.Errorf("api: %w", err)
	}
	defer resp.Body.Close()

	var dto pictureDTO
	if err := decodeEnvelope(resp, &dto); err != nil {
		return lab.Picture{}, err
	}
	return dto.toPicture(), nil
}

// Model fetches one model by ID.
func (c *Client) Model(ctx context.Context, id string) (lab.Model3D, error) {
	var dto modelDTO
	if err := c.do(ctx, http.MethodGet, "/model/"+url.PathEscape(id), nil, &dto); err != nil {
		return lab.Model3D{}, err
	}
	return dto.toModel(), nil
}

// ModelForImage fetches the model reconstructed from a source picture.
func (c *Client) ModelForImage(ctx context.Context, imageID string) (lab.Model3D, error) {
	var dto modelDTO
	if err := c.do(ctx, http.MethodGet, "/model/image/"+url.PathEscape(imageID), nil, &dto); err != nil {
		return lab.Model3D{}, err
	}
	return dto.toModel(), nil
}

// ListModels returns one page of models.
func (c *Client) ListModels(ctx context.Context, query lab.LibraryQuery) (lab.Page[lab.Model3D], error) {
	var dto pageDTO[modelDTO]
	body := pageRequestDTO{
		Current:  query.Current,
		PageSize: query.PageSize,
		Category: query.Category,
		Name:     query.Name,
	}
	if err := c.do(ctx, http.MethodPost, "/model/list/page", body, &dto); err != nil {
		return lab.Page[lab.Model3D]{}, err
	}
	return toPage(dto, modelDTO.toModel), nil
}

// ModelCategories returns the known model categories.
func (c *Client) ModelCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/model/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
