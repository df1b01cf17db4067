package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/grovetools/llmcompare/errors"
)

// formPayload is a pre-encoded multipart body. Its content type carries the
// boundary chosen by the multipart writer.
type formPayload struct {
	data        []byte
	contentType string
}

// Upload posts r as a multipart/form-data file field and decodes the JSON
// response into out. No JSON content type is sent.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	payload, err := newFormPayload(field, filename, r)
	if err != nil {
		err = errors.Wrap(err, errors.ErrCodeInternal, "failed to build upload body").
			WithDetail("path", path).
			WithDetail("filename", filename)
		c.logger.WithError(err).Error("Upload failed")
		return err
	}
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: payload}, out)
}

func newFormPayload(field, filename string, r io.Reader) (*formPayload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return &formPayload{data: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}
