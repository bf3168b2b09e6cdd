package handler

import "net/http"

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty creates an empty response with status 204 (No Content).
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}

// EmptyWithStatus creates an empty response with a custom status code.
func EmptyWithStatus(status int) Response {
	return emptyResponse{status: status}
}

type textResponse struct {
	status      int
	contentType string
	body        string
}

func (t textResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", t.contentType)
	w.WriteHeader(t.status)
	_, err := w.Write([]byte(t.body))
	return err
}

// HTML writes body as text/html with status 200.
func HTML(body string) Response {
	return textResponse{status: http.StatusOK, contentType: "text/html; charset=utf-8", body: body}
}

// Text writes body as text/plain with status 200.
func Text(body string) Response {
	return textResponse{status: http.StatusOK, contentType: "text/plain; charset=utf-8", body: body}
}
