package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Upload is one file to send to the media endpoints.
type Upload struct {
	Name   string
	Reader io.Reader
}

// doMultipart posts files under the given form field and decodes the JSON
// response into out.
func (c *Client) doMultipart(ctx context.Context, op, rawURL, field string, files []Upload, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := writer.CreateFormFile(field, f.Name)
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("failed to read upload %s: %w", f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	c.log.WithFields(logrus.Fields{"op": op, "files": len(files)}).Debug("media upload")

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &Error{Kind: kindForStatus(resp.StatusCode), Op: op, Status: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// UploadImage uploads a single image and returns its served URL.
func (c *Client) UploadImage(ctx context.Context, file Upload) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.doMultipart(ctx, "upload image", c.baseURL+"/upload", "image", []Upload{file}, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// UploadProductImages uploads images for a product and returns the served
// URLs.
func (c *Client) UploadProductImages(ctx context.Context, productID string, files []Upload) ([]string, error) {
	var resp struct {
		URLs []string `json:"urls"`
	}
	url := c.endpoint("media", "upload", productID)
	if err := c.doMultipart(ctx, "upload product images", url, "images", files, &resp); err != nil {
		return nil, err
	}
	return resp.URLs, nil
}

// DeleteMedia removes an uploaded media item.
func (c *Client) DeleteMedia(ctx context.Context, mediaID string) error {
	return c.do(ctx, "delete media", http.MethodDelete, c.endpoint("media", mediaID), true, nil, nil)
}
