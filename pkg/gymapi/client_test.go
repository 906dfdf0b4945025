package gymapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return client
}

func TestNewClient_Config(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewClient(Config{BaseURL: "api.milicode.ir"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	client, err := NewClient(Config{BaseURL: "https://api.milicode.ir/"})
	require.NoError(t, err)
	cfg := client.GetConfig()
	assert.Equal(t, "https://api.milicode.ir", cfg.BaseURL)
	assert.Equal(t, DefaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, DefaultWriteTimeout, cfg.WriteTimeout)
}

func TestClient_CreateBranch(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/Gym", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	reg := model.NewDraft().Registration
	reg.Name = "باشگاه"
	reg.Area = 100

	require.NoError(t, client.CreateBranch(context.Background(), reg))
	assert.Equal(t, "باشگاه", got["name"])
	assert.NotContains(t, got, "step")

	loc := got["location"].(map[string]interface{})
	assert.Equal(t, "Point", loc["type"])
	assert.Equal(t, []interface{}{model.DefaultLongitude, model.DefaultLatitude}, loc["coordinates"])
}

func TestClient_ServerError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "message field", body: `{"message":"duplicate"}`, message: "duplicate"},
		{name: "problem details", body: `{"title":"One or more validation errors occurred."}`, message: "One or more validation errors occurred."},
		{name: "plain text", body: `oops`, message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(tt.body))
			})

			err := client.CreateBranch(context.Background(), model.Registration{})
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, 500, StatusCode(err))
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	srv.Close()

	_, err = client.ListBranches(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, 0, StatusCode(err))
}

func TestClient_ReadTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, ReadTimeout: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.GetBranch(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClient_ListAndGetBranch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/Branch":
			_, _ = w.Write([]byte(`[{"id":7,"name":"الف","complitedData":true},{"id":"b-2","name":"ب"}]`))
		case "/api/Branch/7":
			_, _ = w.Write([]byte(`{"id":7,"name":"الف","area":120.5,"facilities":{"hasCafe":true},
				"location":{"type":"Point","coordinates":[51.4,35.7]},"address":{"province":"1","city":2}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	branches, err := client.ListBranches(context.Background())
	require.NoError(t, err)
	require.Len(t, branches, 2)
	assert.Equal(t, "7", branches[0].ID.String())
	assert.True(t, branches[0].CompletedData)
	assert.Equal(t, "b-2", branches[1].ID.String())

	branch, err := client.GetBranch(context.Background(), "7")
	require.NoError(t, err)
	require.NotNil(t, branch.Area)
	assert.Equal(t, 120.5, *branch.Area)
	assert.True(t, branch.Facilities.HasCafe)
	assert.True(t, branch.HasLocation())
	assert.Equal(t, "2", branch.Address.City.String())

	_, err = client.GetBranch(context.Background(), "404")
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestClient_GetBranchRequiresID(t *testing.T) {
	called := false
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) { called = true })

	_, err := client.GetBranch(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.False(t, called)
}

func TestClient_UpdateFacilities(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/Branch/12/facilities", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	err := client.UpdateFacilities(context.Background(), "12", model.Facilities{HasWC: true, HasJacuzzi: true})
	require.NoError(t, err)
	assert.Equal(t, "12", got["branchId"])
	assert.Equal(t, true, got["hasWC"])
	assert.Equal(t, true, got["hasJacuzzi"])
	assert.Equal(t, false, got["hasCafe"])
	assert.Len(t, got, 10)
}

func TestClient_UploadMedia(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/Branch/12/media", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		files := r.MultipartForm.File[MediaField]
		require.Len(t, files, 2)
		assert.Equal(t, "a.jpg", files[0].Filename)
		assert.Equal(t, "image/jpeg", files[0].Header.Get("Content-Type"))

		f, err := files[1].Open()
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)
		assert.Equal(t, "second", string(content))
	})

	err := client.UploadMedia(context.Background(), "12", []MediaFile{
		{Filename: "a.jpg", ContentType: "image/jpeg", Content: strings.NewReader("first")},
		{Filename: "b.png", Content: strings.NewReader("second")},
	})
	require.NoError(t, err)

	err = client.UploadMedia(context.Background(), "12", nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
