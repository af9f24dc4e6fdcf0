package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/midcare/pflegedoc/internal/domain/client"
	"github.com/midcare/pflegedoc/internal/domain/entry"
	"github.com/midcare/pflegedoc/internal/http/handlers"
)

func TestCreateEntryHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeEntriesRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{
				"category": "medikamente",
				"description": "Marcumar 3mg verabreicht",
				"recordedBy": "Maria Weber"
			}`,
			repoSetUp: func(f *fakeEntriesRepo) {
				f.createFn = func(ctx context.Context, clientID string, req entry.CreateEntryRequest) (entry.CareEntry, error) {
					return entry.NewFromCreateRequest(clientID, req), nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "description_too_short",
			body: `{
				"category": "medikamente",
				"description": "kurz",
				"recordedBy": "Maria Weber"
			}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "unknown_category_rejected_on_write",
			body: `{
				"category": "sonstiges",
				"description": "Freitext ohne bekannte Kategorie",
				"recordedBy": "Maria Weber"
			}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "missing_client",
			body: `{
				"category": "grundpflege",
				"description": "Morgendliche Körperpflege",
				"recordedBy": "Maria Weber"
			}`,
			repoSetUp: func(f *fakeEntriesRepo) {
				f.createFn = func(ctx context.Context, clientID string, req entry.CreateEntryRequest) (entry.CareEntry, error) {
					return entry.CareEntry{}, client.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "repo_error",
			body: `{
				"category": "grundpflege",
				"description": "Morgendliche Körperpflege",
				"recordedBy": "Maria Weber"
			}`,
			repoSetUp: func(f *fakeEntriesRepo) {
				f.createFn = func(ctx context.Context, clientID string, req entry.CreateEntryRequest) (entry.CareEntry, error) {
					return entry.CareEntry{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEntriesRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewEntriesHandler(repo)

			r := setupRouter(http.MethodPost, "/clients/:id/entries", h.CreateEntry)

			req := httptest.NewRequest(http.MethodPost, "/clients/abc/entries", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestDeleteEntryHandler(t *testing.T) {
	repo := &fakeEntriesRepo{
		deleteFn: func(ctx context.Context, id string) error {
			if id == "missing" {
				return entry.ErrNotFound
			}
			return nil
		},
	}

	h := handlers.NewEntriesHandler(repo)
	r := setupRouter(http.MethodDelete, "/entries/:id", h.DeleteEntry)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/entries/e1", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("got status %d, want 204", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/entries/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", w.Code)
	}
}
