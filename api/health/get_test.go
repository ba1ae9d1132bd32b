package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
	"github.com/killallgit/marathon-api/internal/database"
	"github.com/killallgit/marathon-api/internal/services/catalog"
	"github.com/killallgit/marathon-api/internal/services/marathons"
	"github.com/killallgit/marathon-api/internal/services/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "health.db"), false)
	require.NoError(t, err)
	return db
}

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupDeps      func(t *testing.T) *types.Dependencies
		expectedStatus int
		expectedBody   string
		expectedDB     string
		expectedStore  string
	}{
		{
			name: "healthy with database and store",
			setupDeps: func(t *testing.T) *types.Dependencies {
				db := openDB(t)
				t.Cleanup(func() { _ = db.Close() })
				return &types.Dependencies{DB: db, Store: storage.NewMemoryStore(0)}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "healthy",
			expectedDB:     "healthy",
			expectedStore:  "healthy",
		},
		{
			name: "nothing configured",
			setupDeps: func(t *testing.T) *types.Dependencies {
				return &types.Dependencies{}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "healthy",
			expectedDB:     "not configured",
			expectedStore:  "not configured",
		},
		{
			name: "closed database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				db := openDB(t)
				require.NoError(t, db.Close())
				return &types.Dependencies{DB: db}
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "unhealthy",
			expectedDB:     "unhealthy",
			expectedStore:  "not configured",
		},
		{
			name: "unavailable store",
			setupDeps: func(t *testing.T) *types.Dependencies {
				store := storage.NewMemoryStore(0)
				store.SetUnavailable(true)
				return &types.Dependencies{Store: store}
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "unhealthy",
			expectedDB:     "not configured",
			expectedStore:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

			Get(tt.setupDeps(t))(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedBody, response["status"])
			assert.Equal(t, tt.expectedDB, response["database"].(map[string]interface{})["status"])
			assert.Equal(t, tt.expectedStore, response["storage"].(map[string]interface{})["status"])
		})
	}
}

func TestGetStorageStatus_WriteBehind(t *testing.T) {
	gin.SetMode(gin.TestMode)

	backend := storage.NewMemoryStore(1024)
	require.NoError(t, backend.Write(context.Background(), marathons.MarathonsKey, []byte(`{"version":1,"marathons":[]}`)))
	wb := storage.NewWriteBehind(backend)
	t.Cleanup(func() { _ = wb.Close() })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	status := getStorageStatus(c, &types.Dependencies{Store: wb})
	assert.Equal(t, "healthy", status["status"])
	assert.Equal(t, 0, status["pending"])
	assert.Equal(t, int64(1), status["keys"])
	assert.Equal(t, int64(1024), status["max_size"])
}

type catalogStub struct{ stats catalog.Stats }

func (s catalogStub) Stats() catalog.Stats { return s.stats }

func TestGet_CatalogStats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		catalog     types.CatalogStats
		wantCatalog bool
	}{
		{name: "lookups disabled", catalog: nil, wantCatalog: false},
		{
			name:        "lookups enabled",
			catalog:     catalogStub{stats: catalog.Stats{Requests: 3, CacheHits: 2, CacheMisses: 3, CachedMovies: 3}},
			wantCatalog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

			Get(&types.Dependencies{Store: storage.NewMemoryStore(0), Catalog: tt.catalog})(c)
			require.Equal(t, http.StatusOK, w.Code)

			var response struct {
				Catalog *catalog.Stats `json:"catalog"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			if !tt.wantCatalog {
				assert.Nil(t, response.Catalog)
				return
			}
			require.NotNil(t, response.Catalog)
			assert.Equal(t, int64(3), response.Catalog.Requests)
			assert.Equal(t, int64(2), response.Catalog.CacheHits)
			assert.Equal(t, 3, response.Catalog.CachedMovies)
		})
	}
}
