// internal/tests/api_test.go
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/haspco/safety-catalog/internal/cache"
	"github.com/haspco/safety-catalog/internal/config"
	"github.com/haspco/safety-catalog/internal/database"
	"github.com/haspco/safety-catalog/internal/dataset"
	"github.com/haspco/safety-catalog/internal/i18n"
	"github.com/haspco/safety-catalog/internal/models"
	"github.com/haspco/safety-catalog/internal/router"
	"github.com/haspco/safety-catalog/internal/testutil"
	"github.com/haspco/safety-catalog/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Port:           "3001",
			AllowedOrigins: []string{"*"},
			RateLimit:      1000,
			RateBurst:      1000,
		},
	}
}

type APITestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc
	data   *dataset.Dataset
	store  *database.Store
	pool   *testutil.MemoryPool
	router *gin.Engine
}

func (suite *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize("en"))
	suite.data = dataset.MustLoad()
}

func (suite *APITestSuite) SetupTest() {
	suite.ctx, suite.cancel = context.WithCancel(context.Background())
	suite.store = database.NewStore(testutil.QuietLogger())
	suite.pool = testutil.NewMemoryPool()
	suite.router = router.Initialize(suite.ctx, testConfig(), suite.store, suite.data, cache.Noop{}, testutil.QuietLogger())
}

func (suite *APITestSuite) TearDownTest() {
	suite.cancel()
}

func (suite *APITestSuite) request(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(jsonData)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}

func (suite *APITestSuite) TestHealthReportsFallback() {
	w := suite.request(http.MethodGet, "/api/health", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"ok":true,"dbConnected":false}`, w.Body.String())
}

func (suite *APITestSuite) TestHealthAfterConnect() {
	suite.Require().True(suite.store.Attach(suite.pool))

	w := suite.request(http.MethodGet, "/api/health", nil)
	assert.JSONEq(suite.T(), `{"ok":true,"dbConnected":true}`, w.Body.String())
}

func (suite *APITestSuite) TestProductsFromBundledData() {
	w := suite.request(http.MethodGet, "/api/products", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "static", w.Header().Get("X-Catalog-Source"))

	var products []models.Product
	suite.decode(w, &products)
	assert.Len(suite.T(), products, len(suite.data.Products))
}

func (suite *APITestSuite) TestProductsFromMock() {
	cfg := testConfig()
	cfg.Catalog.UseMock = true
	r := router.Initialize(suite.ctx, cfg, suite.store, suite.data, cache.Noop{}, testutil.QuietLogger())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	var products []models.Product
	suite.decode(w, &products)
	assert.Len(suite.T(), products, 3)
	assert.Equal(suite.T(), "mock", w.Header().Get("X-Catalog-Source"))
}

func (suite *APITestSuite) TestProductByID() {
	w := suite.request(http.MethodGet, "/api/products/1", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var product models.Product
	suite.decode(w, &product)
	assert.Equal(suite.T(), "Zircon1", product.Name)
}

func (suite *APITestSuite) TestProductNotFound() {
	for _, path := range []string{"/api/products/999999", "/api/products/not-a-number"} {
		w := suite.request(http.MethodGet, path, nil)
		assert.Equal(suite.T(), http.StatusNotFound, w.Code)
		assert.JSONEq(suite.T(), `{"error":"Product not found"}`, w.Body.String())
	}
}

func (suite *APITestSuite) TestProductNotFoundInArabic() {
	w := suite.request(http.MethodGet, "/api/products/999999", nil, "Accept-Language", "ar")

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.JSONEq(suite.T(), `{"error":"المنتج غير موجود"}`, w.Body.String())
}

func (suite *APITestSuite) TestManufacturers() {
	w := suite.request(http.MethodGet, "/api/manufacturers", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var manufacturers []models.Manufacturer
	suite.decode(w, &manufacturers)
	assert.Len(suite.T(), manufacturers, len(suite.data.Manufacturers))
}

func (suite *APITestSuite) TestManufacturerByName() {
	w := suite.request(http.MethodGet, "/api/manufacturers/delta%20plus", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var detail models.ManufacturerDetail
	suite.decode(w, &detail)
	assert.Equal(suite.T(), "Delta Plus", detail.Name)
	assert.Equal(suite.T(), 30, detail.ProductCount)

	w = suite.request(http.MethodGet, "/api/manufacturers/Acme", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.JSONEq(suite.T(), `{"error":"Manufacturer not found"}`, w.Body.String())
}

func (suite *APITestSuite) TestCreateProductInFallback() {
	w := suite.request(http.MethodPost, "/api/products", map[string]interface{}{
		"name":   "Helmet",
		"colors": `["white"]`,
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"message":"Product added successfully","productId":0}`, w.Body.String())
}

func (suite *APITestSuite) TestCreateProductRoundTrip() {
	suite.Require().True(suite.store.Attach(suite.pool))

	w := suite.request(http.MethodPost, "/api/products", map[string]interface{}{
		"name":           "Zircon1",
		"category":       "Head Protection",
		"subCategory":    "Safety Helmets",
		"distributor":    "Delta Plus",
		"colors":         `["green","orange"]`,
		"sizes":          `["Adjustable"]`,
		"colorVariants":  `[{"name":"green","gallery":["/images/zircon1_green.png"]}]`,
		"gallery":        `["/images/zircon1.png"]`,
		"additionalInfo": `{"Weight":"370 g"}`,
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var created struct {
		Message   string `json:"message"`
		ProductID int64  `json:"productId"`
	}
	suite.decode(w, &created)
	assert.Equal(suite.T(), int64(1), created.ProductID)

	w = suite.request(http.MethodGet, "/api/products/1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var product models.Product
	suite.decode(w, &product)
	assert.Equal(suite.T(), models.StringList{"green", "orange"}, product.Colors)
	assert.Equal(suite.T(), models.StringList{"Adjustable"}, product.Sizes)
	assert.Equal(suite.T(), models.StringList{"/images/zircon1.png"}, product.Gallery)
	assert.Equal(suite.T(), "370 g", product.AdditionalInfo["Weight"])
	suite.Require().Len(product.ColorVariants, 1)
	assert.Equal(suite.T(), "green", product.ColorVariants[0].Name)

	w = suite.request(http.MethodGet, "/api/products", nil)
	assert.Equal(suite.T(), "database", w.Header().Get("X-Catalog-Source"))
	var products []models.Product
	suite.decode(w, &products)
	assert.Len(suite.T(), products, 1)
}

func (suite *APITestSuite) TestCreateProductValidation() {
	w := suite.request(http.MethodPost, "/api/products", map[string]interface{}{"category": "Gloves"})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	var body struct {
		Error   string                  `json:"error"`
		Details []utils.ValidationError `json:"details"`
	}
	suite.decode(w, &body)
	suite.Require().Len(body.Details, 1)
	assert.Equal(suite.T(), "name", body.Details[0].Field)

	w = suite.request(http.MethodPost, "/api/products", map[string]interface{}{"name": "Helmet", "sizes": "XL"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"field":"sizes"`)
}

func (suite *APITestSuite) TestCreateProductInsertFailure() {
	suite.Require().True(suite.store.Attach(suite.pool))
	suite.pool.FailWith(assert.AnError)

	w := suite.request(http.MethodPost, "/api/products", map[string]interface{}{"name": "Helmet"})

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.JSONEq(suite.T(), `{"error":"Error inserting product"}`, w.Body.String())
}

func (suite *APITestSuite) TestCreateProductRequiresTokenWhenConfigured() {
	cfg := testConfig()
	cfg.Auth.AdminSecret = "s3cret"
	r := router.Initialize(suite.ctx, cfg, suite.store, suite.data, cache.Noop{}, testutil.QuietLogger())

	body := bytes.NewBufferString(`{"name":"Helmet"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/products", body))
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	token, err := utils.GenerateAdminToken("s3cret", "editor", time.Hour)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(`{"name":"Helmet"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestProductListFailureIsServerError() {
	suite.Require().True(suite.store.Attach(suite.pool))
	suite.pool.FailWith(assert.AnError)

	w := suite.request(http.MethodGet, "/api/products", nil)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.JSONEq(suite.T(), `{"error":"Error fetching products"}`, w.Body.String())
}

func (suite *APITestSuite) TestLookupFailuresHideDriverErrors() {
	suite.Require().True(suite.store.Attach(suite.pool))
	suite.pool.FailWith(errors.New(`pq: relation "products" does not exist`))

	w := suite.request(http.MethodGet, "/api/products/1", nil)
	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.JSONEq(suite.T(), `{"error":"Error fetching products"}`, w.Body.String())

	w = suite.request(http.MethodGet, "/api/manufacturers/3M", nil)
	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.JSONEq(suite.T(), `{"error":"Error fetching manufacturers"}`, w.Body.String())
	assert.NotContains(suite.T(), w.Body.String(), "relation")
}

func (suite *APITestSuite) TestSearch() {
	w := suite.request(http.MethodGet, "/api/products/search?manufacturer=3m&limit=5&page=2", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "22", w.Header().Get("X-Total-Count"))
	assert.Equal(suite.T(), "5", w.Header().Get("X-Total-Pages"))

	var body struct {
		Data       []models.Product `json:"data"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	suite.decode(w, &body)
	assert.Len(suite.T(), body.Data, 5)
	assert.Equal(suite.T(), 2, body.Pagination.Page)
	for _, p := range body.Data {
		assert.Equal(suite.T(), "3M", p.Distributor.String())
	}
}

func (suite *APITestSuite) TestSearchSortByName() {
	w := suite.request(http.MethodGet, "/api/products/search?manufacturer=KOSMODISK&sort=name", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var body struct {
		Data []models.Product `json:"data"`
	}
	suite.decode(w, &body)
	suite.Require().NotEmpty(body.Data)
	for i := 1; i < len(body.Data); i++ {
		assert.LessOrEqual(suite.T(), strings.ToLower(body.Data[i-1].Name), strings.ToLower(body.Data[i].Name))
	}

	w = suite.request(http.MethodGet, "/api/products/search?sort=price", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestSearchHugePage() {
	w := suite.request(http.MethodGet, "/api/products/search?page=1024819115206086202", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "123", w.Header().Get("X-Total-Count"))

	var body struct {
		Data []models.Product `json:"data"`
	}
	suite.decode(w, &body)
	assert.Empty(suite.T(), body.Data)
}

func (suite *APITestSuite) TestFeatured() {
	w := suite.request(http.MethodGet, "/api/products/featured", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var products []models.Product
	suite.decode(w, &products)
	assert.Len(suite.T(), products, 12)
	assert.Equal(suite.T(), int64(1), products[0].ID)
}

func (suite *APITestSuite) TestCatalogTree() {
	w := suite.request(http.MethodGet, "/api/catalog/tree?by=category", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var body struct {
		By   string `json:"by"`
		Tree struct {
			Children []struct {
				Name string `json:"name"`
			} `json:"children"`
		} `json:"tree"`
	}
	suite.decode(w, &body)
	assert.Equal(suite.T(), "category", body.By)
	assert.Len(suite.T(), body.Tree.Children, 12)
	assert.Equal(suite.T(), "Head Protection", body.Tree.Children[0].Name)

	w = suite.request(http.MethodGet, "/api/catalog/tree?by=colour", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestCatalogOptionsAndBrowse() {
	w := suite.request(http.MethodGet, "/api/catalog/options?manufacturer=Delta%20Plus", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var options struct {
		Level   string   `json:"level"`
		Options []string `json:"options"`
	}
	suite.decode(w, &options)
	assert.Equal(suite.T(), "category", options.Level)
	assert.Contains(suite.T(), options.Options, "Head Protection")

	w = suite.request(http.MethodGet, "/api/catalog/browse?manufacturer=KOSMODISK", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var view struct {
		Step     string           `json:"step"`
		Products []models.Product `json:"products"`
	}
	suite.decode(w, &view)
	assert.NotEmpty(suite.T(), view.Step)
	assert.NotNil(suite.T(), view.Products)
}

func (suite *APITestSuite) TestCategories() {
	w := suite.request(http.MethodGet, "/api/categories", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var categories []map[string]interface{}
	suite.decode(w, &categories)
	assert.Len(suite.T(), categories, len(suite.data.Categories))
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
