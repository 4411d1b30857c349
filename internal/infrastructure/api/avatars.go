package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// Blob contenido binario descargado. El llamador es dueño de Body y debe cerrarlo
// cuando deje de mostrarlo.
type Blob struct {
	ContentType string
	Size        int64 // -1 si el servidor no lo informa
	Body        io.ReadCloser
}

// Close libera el contenido.
func (b *Blob) Close() error { return b.Body.Close() }

// AvatarService foto de perfil de los usuarios.
type AvatarService struct {
	c *Client
}

// NewAvatarService construye el servicio.
func NewAvatarService(c *Client) *AvatarService { return &AvatarService{c: c} }

// Upload envía la imagen como multipart (campo "avatar"). El cuerpo se genera en streaming.
func (s *AvatarService) Upload(ctx context.Context, userID int64, filename string, content io.Reader) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("avatar", filepath.Base(filename))
		if err == nil {
			_, err = io.Copy(part, content)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	path := fmt.Sprintf("/UserAvatar/%d/avatar", userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.c.baseURL+path, pr)
	if err != nil {
		pr.Close()
		return fmt.Errorf("api: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.c.send(req, "Error al subir el avatar")
	if err != nil {
		pr.Close()
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	return nil
}

// Fetch descarga la imagen del usuario.
func (s *AvatarService) Fetch(ctx context.Context, userID int64) (*Blob, error) {
	path := fmt.Sprintf("/UserAvatar/%d/avatar", userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("api: crear HTTP request: %w", err)
	}
	resp, err := s.c.send(req, "Error al obtener el avatar")
	if err != nil {
		return nil, err
	}
	return &Blob{
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
		Body:        resp.Body,
	}, nil
}
