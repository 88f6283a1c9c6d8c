package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"

	"github.com/go-faster/errors"
)

// UploadImage sends an image file and returns the URL the server stored it
// under. Size and type limits are enforced server-side.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", errors.Wrap(err, "create form file")
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", errors.Wrap(err, "copy file")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "close form")
	}

	req, err := c.newRequest(ctx, "POST", "/uploads/image", nil, &buf, w.FormDataContentType())
	if err != nil {
		return "", err
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
