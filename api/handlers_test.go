package api_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesapi/api"
	"salesapi/database"
	cataloginfra "salesapi/internal/catalog/infrastructure"
	"salesapi/internal/ingest"
	salesapp "salesapi/internal/sales/application"
	salesinfra "salesapi/internal/sales/infrastructure"
	sharedinfra "salesapi/internal/shared/infrastructure"
	"salesapi/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()

	db := testhelpers.SetupTestDB(t)

	families := cataloginfra.NewFamilyRepository(db, database.DialectSQLite)
	products := cataloginfra.NewProductRepository(db, database.DialectSQLite)
	sales := salesinfra.NewSalesRepository(db, database.DialectSQLite)
	aggregation := salesapp.NewAggregationService(sales, sharedinfra.NewInMemoryCache())
	ingestSvc := ingest.NewService(families, products, sales, sharedinfra.NewUnitOfWork(db))

	handler := &api.Handler{
		Families:    families,
		Products:    products,
		Ingest:      ingestSvc,
		Aggregation: aggregation,
		TmpDir:      t.TempDir(),
	}

	router := gin.New()
	handler.Register(router)
	return router, db
}

func perform(router *gin.Engine, method, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func multipartCSV(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", "sales.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestLoadDataSuccess(t *testing.T) {
	router, db := setupRouter(t)

	body, contentType := multipartCSV(t,
		"Family,Product Name,Product ID,Price,2023-07\nElectronics,Smartwatch,1,199.99,30\n")
	w := perform(router, http.MethodPost, "/load-data/", body, contentType)

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, "Data loaded successfully", payload["message"])
	assert.Equal(t, 1, testhelpers.CountRows(t, db, "products"))
	assert.Equal(t, 1, testhelpers.CountRows(t, db, "sales"))
}

func TestLoadDataMissingFile(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, http.MethodPost, "/load-data/", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoadDataUnreadableFile(t *testing.T) {
	router, _ := setupRouter(t)

	// En-tête trop court sous tous les couples encodage/délimiteur
	body, contentType := multipartCSV(t, "une seule colonne\nvaleur\n")
	w := perform(router, http.MethodPost, "/load-data/", body, contentType)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetProduct(t *testing.T) {
	router, db := setupRouter(t)
	familyID := testhelpers.InsertFamily(t, db, "Electronics")
	testhelpers.InsertProduct(t, db, 42, "Smartwatch", 199.99, familyID)

	w := perform(router, http.MethodGet, "/product/42", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	assert.Equal(t, "success", payload["status"])
	data := payload["data"].(map[string]interface{})
	assert.Equal(t, "Smartwatch", data["name"])
	assert.InDelta(t, 199.99, data["price"], 1e-9)
}

func TestGetProductNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, http.MethodGet, "/product/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decodeBody(t, w)["error"])
}

func TestGetProductInvalidID(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, http.MethodGet, "/product/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProductPrice(t *testing.T) {
	router, db := setupRouter(t)
	familyID := testhelpers.InsertFamily(t, db, "Electronics")
	testhelpers.InsertProduct(t, db, 42, "Smartwatch", 199.99, familyID)

	w := perform(router, http.MethodPut, "/product/42?price=149.99", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product updated successfully", decodeBody(t, w)["message"])

	w = perform(router, http.MethodGet, "/product/42", nil, "")
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.InDelta(t, 149.99, data["price"], 1e-9)
}

func TestUpdateProductNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, http.MethodPut, "/product/999?price=10", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProductInvalidPrice(t *testing.T) {
	router, db := setupRouter(t)
	familyID := testhelpers.InsertFamily(t, db, "Electronics")
	testhelpers.InsertProduct(t, db, 42, "Smartwatch", 199.99, familyID)

	w := perform(router, http.MethodPut, "/product/42?price=cher", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductSalesLastYear(t *testing.T) {
	router, db := setupRouter(t)
	familyID := testhelpers.InsertFamily(t, db, "Electronics")
	testhelpers.InsertProduct(t, db, 42, "Smartwatch", 199.99, familyID)
	testhelpers.InsertSales(t, db, 42, time.Now().UTC().AddDate(0, -2, 0), 30)
	testhelpers.InsertSales(t, db, 42, time.Now().UTC().AddDate(-2, 0, 0), 99)

	w := perform(router, http.MethodGet, "/product/42/sales/last-year", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	assert.Equal(t, "success", payload["status"])
	assert.InDelta(t, 30, payload["total_sales"], 1e-9)
}

func TestGetProductSalesLastYearUnknownProductIsZero(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, http.MethodGet, "/product/999/sales/last-year", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 0, decodeBody(t, w)["total_sales"], 1e-9)
}

func TestGetFamily(t *testing.T) {
	router, db := setupRouter(t)
	familyID := testhelpers.InsertFamily(t, db, "Electronics")

	w := perform(router, http.MethodGet, "/family/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	data := payload["data"].(map[string]interface{})
	assert.Equal(t, "Electronics", data["name"])
	assert.InDelta(t, float64(familyID), data["id"], 1e-9)
}

func TestGetFamilyNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, http.MethodGet, "/family/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Family not found", decodeBody(t, w)["error"])
}

func TestAddProductToFamily(t *testing.T) {
	router, db := setupRouter(t)
	oldFamily := testhelpers.InsertFamily(t, db, "Electronics")
	newFamily := testhelpers.InsertFamily(t, db, "Maison")
	testhelpers.InsertProduct(t, db, 42, "Smartwatch", 199.99, oldFamily)

	w := perform(router, http.MethodPost, "/family/2/product/?product_id=42", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product added to family successfully", decodeBody(t, w)["message"])

	var got int64
	require.NoError(t, db.QueryRow(`SELECT family_id FROM products WHERE id = 42`).Scan(&got))
	assert.Equal(t, newFamily, got)
}

func TestAddProductToFamilyMissingFamily(t *testing.T) {
	router, db := setupRouter(t)
	familyID := testhelpers.InsertFamily(t, db, "Electronics")
	testhelpers.InsertProduct(t, db, 42, "Smartwatch", 199.99, familyID)

	w := perform(router, http.MethodPost, "/family/999/product/?product_id=42", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Family not found", decodeBody(t, w)["error"])
}

func TestAddProductToFamilyMissingProduct(t *testing.T) {
	router, db := setupRouter(t)
	testhelpers.InsertFamily(t, db, "Electronics")

	w := perform(router, http.MethodPost, "/family/1/product/?product_id=999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decodeBody(t, w)["error"])
}

func TestAddProductToFamilyInvalidQuery(t *testing.T) {
	router, db := setupRouter(t)
	testhelpers.InsertFamily(t, db, "Electronics")

	w := perform(router, http.MethodPost, "/family/1/product/", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
