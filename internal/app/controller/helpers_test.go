package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/internal/app/repository"
	"github.com/milicode/gym-panel/internal/app/service"
	"github.com/milicode/gym-panel/internal/inflight"
	"github.com/milicode/gym-panel/internal/middleware"
	"github.com/milicode/gym-panel/internal/storage"
	"github.com/milicode/gym-panel/internal/views"
	"github.com/milicode/gym-panel/pkg/gymapi"
	"github.com/stretchr/testify/require"
)

const testSessionID = "session-1"

// apiStub is a fake branch API. Statuses default to 200.
type apiStub struct {
	mu               sync.Mutex
	createStatus     int
	facilitiesStatus int
	mediaStatus      int
	requests         int

	created    []model.Registration
	facilities []map[string]interface{}
	mediaFiles []string
}

func (s *apiStub) status(code int) int {
	if code == 0 {
		return http.StatusOK
	}
	return code
}

func (s *apiStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/Gym":
		if code := s.status(s.createStatus); code != http.StatusOK {
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"message":"duplicate name"}`))
			return
		}
		var reg model.Registration
		_ = json.NewDecoder(r.Body).Decode(&reg)
		s.created = append(s.created, reg)
		w.WriteHeader(http.StatusCreated)

	case r.Method == http.MethodGet && r.URL.Path == "/api/Branch":
		_, _ = w.Write([]byte(`[{"id":7,"name":"باشگاه هفت","complitedData":false}]`))

	case r.Method == http.MethodGet && r.URL.Path == "/api/Branch/7":
		_, _ = w.Write([]byte(`{"id":7,"name":"باشگاه هفت","description":"**بهترین**","facilities":{"hasCafe":true}}`))

	case r.Method == http.MethodPut && r.URL.Path == "/api/Branch/7/facilities":
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.facilities = append(s.facilities, body)
		w.WriteHeader(s.status(s.facilitiesStatus))

	case r.Method == http.MethodPut && r.URL.Path == "/api/Branch/7/media":
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			for _, fh := range r.MultipartForm.File[gymapi.MediaField] {
				s.mediaFiles = append(s.mediaFiles, fh.Filename)
			}
		}
		w.WriteHeader(s.status(s.mediaStatus))

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"title":"Not Found"}`)
	}
}

func (s *apiStub) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

type testEnv struct {
	engine   *gin.Engine
	api      *apiStub
	client   *gymapi.Client
	drafts   repository.DraftRepository
	registry *inflight.MemoryRegistry
	renderer *views.Renderer
}

func setupTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	stub := &apiStub{}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	client, err := gymapi.NewClient(gymapi.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	renderer, err := views.New()
	require.NoError(t, err)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.SessionIDKey, testSessionID)
		c.Next()
	})

	return &testEnv{
		engine:   router,
		api:      stub,
		client:   client,
		drafts:   repository.NewMemoryDraftRepository(time.Hour),
		registry: inflight.NewMemoryRegistry(time.Minute),
		renderer: renderer,
	}
}

func setupWizardControllerTest(t *testing.T, stepGating bool) *testEnv {
	env := setupTestEnv(t)
	drafts := service.NewDraftService(env.drafts)
	ctrl := NewWizardController(service.NewWizardService(drafts, env.client, env.registry), env.renderer, model.DefaultGazetteer(), stepGating)

	info := env.engine.Group("/information")
	info.GET("", ctrl.ShowInformation)
	info.POST("", ctrl.SubmitInformation)
	info.GET("/manager", ctrl.ShowManager)
	info.POST("/manager", ctrl.SubmitManager)
	info.GET("/address", ctrl.ShowAddress)
	info.POST("/address", ctrl.SubmitAddress)
	info.GET("/location", ctrl.ShowLocation)
	info.POST("/location", ctrl.SubmitLocation)
	info.POST("/back", ctrl.Back)
	return env
}

func setupBranchControllerTest(t *testing.T) *testEnv {
	env := setupTestEnv(t)
	ctrl := NewBranchController(service.NewBranchService(env.client, env.registry), env.renderer, storage.NewMediaPolicy(1<<20))

	env.engine.GET("/", ctrl.List)
	env.engine.GET("/branches/export.xlsx", ctrl.Export)
	env.engine.GET("/branch/", ctrl.Detail)
	env.engine.GET("/branch/:id", ctrl.Detail)
	env.engine.GET("/branch/:id/complete", ctrl.ShowComplete)
	env.engine.POST("/branch/:id/complete", ctrl.SubmitComplete)
	env.engine.NoRoute(NotFound(env.renderer))
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}
