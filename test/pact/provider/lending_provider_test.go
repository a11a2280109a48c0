//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/Apurer/equipment-lending-api/test/pact"

	lendingserver "github.com/Apurer/equipment-lending-api/go"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/adapters/memory"
	equipmentobs "github.com/Apurer/equipment-lending-api/internal/domains/equipment/adapters/observability"
	equipmentworkflows "github.com/Apurer/equipment-lending-api/internal/domains/equipment/adapters/workflows"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/application"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/domain"
	"github.com/Apurer/equipment-lending-api/internal/shared/clock"
	"github.com/Apurer/equipment-lending-api/internal/shared/ids"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestLendingProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateEquipmentBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateEquipmentExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedEquipment(t)
			}
			return nil, nil
		},
		pacttest.StateEquipmentMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateEquipmentBorrowed: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedBorrowing(t, app.seedEquipment(t))
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp swaps in a fresh in-memory stack on every reset.
type contractProviderApp struct {
	mu     sync.RWMutex
	repo   *memory.Repository
	router *gin.Engine
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	today, err := domain.ParseDate(pacttest.Today)
	require.NoError(t, err)

	generator := ids.NewULIDGenerator()
	repo := memory.NewRepository(generator)
	service := equipmentobs.New(application.NewService(
		repo,
		clock.NewFixed(today),
		generator,
		application.WithIdempotencyStore(memory.NewIdempotencyStore()),
	))
	handlers := lendingserver.ApiHandleFunctions{
		EquipmentAPI: lendingserver.NewEquipmentAPI(service, equipmentworkflows.NewInlineEquipmentWorkflows(service)),
		EmployeeAPI:  lendingserver.NewEmployeeAPI(service),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router = lendingserver.NewRouterWithGinEngine(router, handlers)

	a.mu.Lock()
	a.repo = repo
	a.router = router
	a.mu.Unlock()
}

func (a *contractProviderApp) seedEquipment(t testing.TB) *domain.Equipment {
	t.Helper()
	rawID, rawName := pacttest.ExistingEquipmentID, pacttest.ExistingEquipmentName
	id, err := domain.ParseEquipmentID(&rawID)
	require.NoError(t, err)
	name, err := domain.ParseEquipmentName(&rawName)
	require.NoError(t, err)
	equipment := domain.NewEquipment(id, name)
	require.NoError(t, a.repo.Save(context.Background(), equipment))
	return equipment
}

func (a *contractProviderApp) seedBorrowing(t testing.TB, equipment *domain.Equipment) {
	t.Helper()
	today, err := domain.ParseDate(pacttest.Today)
	require.NoError(t, err)
	from, err := domain.ParseDate(pacttest.BorrowedFrom)
	require.NoError(t, err)
	to, err := domain.ParseDate(pacttest.BorrowedTo)
	require.NoError(t, err)
	period, err := domain.NewPeriod(from, to, today)
	require.NoError(t, err)

	rawBorrowingID, rawEmployeeID := pacttest.ExistingBorrowingID, pacttest.EmployeeID
	borrowingID, err := domain.ParseBorrowingID(&rawBorrowingID)
	require.NoError(t, err)
	employeeID, err := domain.ParseEmployeeID(&rawEmployeeID)
	require.NoError(t, err)

	next, err := equipment.Borrow(domain.NewBorrowing(borrowingID, employeeID, equipment.ID(), period), today)
	require.NoError(t, err)
	require.NoError(t, a.repo.Save(context.Background(), next))
}
