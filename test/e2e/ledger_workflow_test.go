//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/stock-ledger/internal/adapters/db"
	redis_a "github.com/ammerola/stock-ledger/internal/adapters/redis_adapter"
	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/services"
	"github.com/ammerola/stock-ledger/internal/handlers"
	"github.com/ammerola/stock-ledger/internal/handlers/middleware"
	"github.com/ammerola/stock-ledger/internal/pkg/auth"
	"github.com/ammerola/stock-ledger/internal/workers"
	"github.com/ammerola/stock-ledger/test/helpers"
)

const e2eSecret = "e2e-secret"

type LedgerE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	token     string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
	catalog   *db.CatalogRepository
	supplier  *domain.Supplier
}

func (s *LedgerE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())
	s.catalog = db.NewCatalogRepository(s.testDB.Database, helpers.TestLogger())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + handlers.APIPrefix

	token, err := auth.Issue(e2eSecret, "", "e2e-clerk", "clerk", time.Hour)
	s.Require().NoError(err)
	s.token = token
}

func (s *LedgerE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *LedgerE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()

	s.supplier = helpers.CreateTestSupplier()
	s.supplier.ID = 0
	s.Require().NoError(s.catalog.SaveSupplier(context.Background(), s.supplier))
}

func (s *LedgerE2ESuite) seedProduct(code string, stock int) *domain.Product {
	p := &domain.Product{
		Code:         code,
		Name:         "E2E " + code,
		Price:        decimal.NewFromInt(10),
		CurrentStock: stock,
		Status:       domain.ProductStatusActive,
		SupplierID:   s.supplier.ID,
	}
	s.Require().NoError(s.catalog.SaveProduct(context.Background(), p))
	return p
}

func (s *LedgerE2ESuite) TestMovementWorkflow() {
	p := s.seedProduct("E2E-MOVE", 10)

	// Warm the product snapshot cache before any write
	resp := s.makeRequest("GET", fmt.Sprintf("/products/%d", p.ID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	var warm domain.Product
	s.decodeResponse(resp, &warm)
	s.Equal(10, warm.CurrentStock)

	// 1. Purchase through the slug route
	resp = s.makeRequest("POST", "/stock/purchase", map[string]interface{}{
		"product_id": p.ID,
		"amount":     5,
		"notes":      "supplier delivery",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var rec domain.MovementRecord
	s.decodeResponse(resp, &rec)
	s.Equal(domain.OutcomeSuccess, rec.Outcome)
	s.Equal(10, *rec.PreviousQuantity)
	s.Equal(15, *rec.NewQuantity)

	// 2. Oversell is rejected, ledgered, and leaves stock untouched
	resp = s.makeRequest("POST", "/stock/movements", map[string]interface{}{
		"product_id": p.ID,
		"amount":     50,
		"kind":       "SALE",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var rejected map[string]interface{}
	s.decodeResponse(resp, &rejected)
	s.Contains(rejected["error"], "not enough stock")
	s.Equal("ERROR", rejected["record"].(map[string]interface{})["outcome"])

	resp = s.makeRequest("GET", fmt.Sprintf("/products/%d", p.ID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	var product domain.Product
	s.decodeResponse(resp, &product)
	s.Equal(15, product.CurrentStock)

	// 3. Both attempts are in the ledger
	resp = s.makeRequest("GET", fmt.Sprintf("/stock/movements?product_id=%d", p.ID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	var page map[string]interface{}
	s.decodeResponse(resp, &page)
	s.Equal(float64(2), page["total_count"])

	resp = s.makeRequest("GET", fmt.Sprintf("/stock/movements/count?product_id=%d&outcome=error", p.ID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	var count map[string]int64
	s.decodeResponse(resp, &count)
	s.Equal(int64(1), count["count"])

	// 4. Fetch a single record by id
	resp = s.makeRequest("GET", "/stock/movements/"+rec.ID.String(), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (s *LedgerE2ESuite) TestUnknownProductIsLedgered() {
	resp := s.makeRequest("POST", "/stock/sale", map[string]interface{}{
		"product_id": 999999,
		"amount":     1,
	})
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest("GET", "/stock/movements/count?outcome=ERROR", nil)
	var count map[string]int64
	s.decodeResponse(resp, &count)
	s.Equal(int64(1), count["count"])
}

func (s *LedgerE2ESuite) TestLifecycleWorkflow() {
	p := s.seedProduct("E2E-LIFE", 0)

	// 1. Deactivate an empty product
	resp := s.makeRequest("PATCH", fmt.Sprintf("/products/%d/deactivate", p.ID), map[string]string{"reason": "season over"})
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 2. Deactivating again conflicts
	resp = s.makeRequest("PATCH", fmt.Sprintf("/products/%d/deactivate", p.ID), nil)
	s.Equal(http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// 3. Movements are refused only for blocking statuses; INACTIVE accepts stock
	resp = s.makeRequest("POST", "/stock/purchase", map[string]interface{}{"product_id": p.ID, "amount": 1})
	s.Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// 4. Reactivate
	resp = s.makeRequest("PATCH", fmt.Sprintf("/products/%d/activate", p.ID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 5. Deactivating with stock fails and discontinues the product
	resp = s.makeRequest("PATCH", fmt.Sprintf("/products/%d/deactivate", p.ID), nil)
	s.Equal(http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest("GET", fmt.Sprintf("/products/%d", p.ID), nil)
	var product domain.Product
	s.decodeResponse(resp, &product)
	s.Equal(domain.ProductStatusDiscontinued, product.Status)

	// 6. Discontinued blocks replenishment
	resp = s.makeRequest("POST", "/stock/purchase", map[string]interface{}{"product_id": p.ID, "amount": 1})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// 7. The status ledger holds every attempt
	resp = s.makeRequest("GET", fmt.Sprintf("/product-status-changes/count?product_id=%d", p.ID), nil)
	var count map[string]int64
	s.decodeResponse(resp, &count)
	s.GreaterOrEqual(count["count"], int64(4))
}

func (s *LedgerE2ESuite) TestAuditedStatusChange() {
	p := s.seedProduct("E2E-AUDIT", 3)

	resp := s.makeRequest("POST", "/product-status-changes", map[string]interface{}{
		"product_id": p.ID,
		"new_status": "BLOCKED",
		"reason":     "quality hold",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var rec domain.StatusChangeRecord
	s.decodeResponse(resp, &rec)
	s.Equal(domain.OutcomeSuccess, rec.Outcome)
	s.Equal(domain.ProductStatusActive, *rec.PreviousStatus)
	s.Equal(domain.ProductStatusBlocked, rec.NewStatus)

	resp = s.makeRequest("GET", "/product-status-changes/"+rec.ID.String(), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest("GET", "/product-status-changes?new_status=blocked", nil)
	var page map[string]interface{}
	s.decodeResponse(resp, &page)
	s.Equal(float64(1), page["total_count"])
}

func (s *LedgerE2ESuite) TestConcurrentSalesNeverOversell() {
	p := s.seedProduct("E2E-RACE", 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := s.makeRequest("POST", "/stock/sale", map[string]interface{}{"product_id": p.ID, "amount": 1})
			resp.Body.Close()
			if resp.StatusCode == http.StatusCreated {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(10, created)

	resp := s.makeRequest("GET", fmt.Sprintf("/products/%d", p.ID), nil)
	var product domain.Product
	s.decodeResponse(resp, &product)
	s.Equal(0, product.CurrentStock)

	resp = s.makeRequest("GET", fmt.Sprintf("/stock/movements/count?product_id=%d", p.ID), nil)
	var count map[string]int64
	s.decodeResponse(resp, &count)
	s.Equal(int64(20), count["count"])
}

func (s *LedgerE2ESuite) TestExportAndJobs() {
	p := s.seedProduct("E2E-EXPORT", 1)
	resp := s.makeRequest("POST", "/stock/sale", map[string]interface{}{"product_id": p.ID, "amount": 1})
	resp.Body.Close()

	resp = s.makeRequest("GET", "/ledger/export?format=xlsx", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	resp.Body.Close()

	resp = s.makeRequest("POST", "/ledger/exports", map[string]string{"format": "pdf"})
	s.Equal(http.StatusAccepted, resp.StatusCode)
	var accepted map[string]string
	s.decodeResponse(resp, &accepted)
	s.NotEmpty(accepted["job_id"])

	resp = s.makeRequest("GET", "/jobs/"+accepted["job_id"], nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	var job map[string]interface{}
	s.decodeResponse(resp, &job)
	s.Equal("pending", job["status"])
}

func (s *LedgerE2ESuite) TestAuthRequired() {
	req, err := http.NewRequest("GET", s.baseURL+"/stock/movements", nil)
	s.Require().NoError(err)
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *LedgerE2ESuite) TestHealthCheck() {
	resp, err := s.client.Get(s.server.URL + "/health")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var health map[string]interface{}
	s.decodeResponse(resp, &health)
	s.Equal("healthy", health["status"])

	services := health["services"].(map[string]interface{})
	s.Contains(services, "database")
	s.Contains(services, "redis")
	s.Contains(services, "ledger")
}

// Helper methods

func (s *LedgerE2ESuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()
	cfg := helpers.LoadTestConfig()
	database := s.testDB.Database

	reportDB, err := db.OpenReportDB(s.testDB.Config)
	s.Require().NoError(err)
	s.T().Cleanup(func() { reportDB.Close() })

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: s.testRedis.Server.Addr()})
	s.T().Cleanup(func() { asynqClient.Close() })

	cache := redis_a.NewCache(s.testRedis.Client, time.Minute, logger)
	jobs := db.NewJobRepository(database, logger)
	publisher := workers.NewAsynqPublisher(asynqClient, jobs, logger)

	products := redis_a.NewProductSnapshotCache(db.NewProductRepository(database, logger), cache, time.Minute, logger)
	uow := db.NewUnitOfWork(database, logger, db.WithProductInvalidation(products))

	engine := services.NewStockMovementEngine(uow, publisher, logger)
	lifecycle := services.NewProductLifecycle(uow, publisher, logger)
	queries := services.NewLedgerQueries(products,
		db.NewMovementLedgerRepository(database, logger),
		db.NewStatusChangeLedgerRepository(database, logger), logger)

	limits := handlers.PageLimits{Default: 50, Max: 500}
	routes := handlers.Routes{
		Stock:         handlers.NewStockHandler(engine, queries, limits, logger),
		Products:      handlers.NewProductHandler(lifecycle, queries, logger),
		StatusChanges: handlers.NewStatusChangeHandler(lifecycle, queries, limits, logger),
		Exports:       handlers.NewExportHandler(db.NewReportRepository(reportDB, logger), publisher, jobs, 10000, logger),
		Health:        handlers.NewHealthHandler(database, s.testRedis.Client, nil, queries, cfg, logger),
	}

	router := handlers.NewRouter(routes, middleware.Authenticate(e2eSecret, "", logger))
	return httptest.NewServer(middleware.Chain(router,
		middleware.RequestID(middleware.DefaultRequestIDHeader),
		middleware.Recovery(logger),
		middleware.Logger(logger, time.Second),
	))
}

func (s *LedgerE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	s.NoError(err)

	return resp
}

func (s *LedgerE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	s.NoError(err)
}

func TestLedgerE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(LedgerE2ESuite))
}
