package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/dmitrymomot/reqcheck/pkg/validator"
)

func bindBody(r *http.Request, req *validator.Request, o options) error {
	req.Body = map[string]any{}
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		// No or unparsable content type: nothing to decode.
		return nil
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return bindJSON(r, req, o.maxBodySize)
	case mediaType == "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(nil, r.Body, o.maxBodySize)
		if err := r.ParseForm(); err != nil {
			return wrapTooLarge(ErrFailedToParseForm, err)
		}
		req.Body = flatten(r.PostForm)
	case mediaType == "multipart/form-data":
		if params["boundary"] == "" {
			return fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
		}
		if err := r.ParseMultipartForm(o.maxMemory); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		if r.MultipartForm != nil {
			req.Body = flatten(r.MultipartForm.Value)
			for name, files := range r.MultipartForm.File {
				if _, taken := req.Body[name]; taken || len(files) == 0 {
					continue
				}
				req.Body[name] = files[0].Filename
			}
		}
	}
	return nil
}

func bindJSON(r *http.Request, req *validator.Request, limit int64) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if int64(len(raw)) > limit {
		return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, limit)
	}
	// Keep the body readable for handlers that decode it themselves.
	r.Body = io.NopCloser(bytes.NewReader(raw))

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	if body == nil {
		body = map[string]any{}
	}
	req.Body = body
	req.RawBody = raw
	return nil
}

func wrapTooLarge(base, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %v", base, err)
}
