package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/nutrichat/backend/internal/api"
	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/conversation"
	"github.com/pageza/nutrichat/backend/internal/diet"
	"github.com/pageza/nutrichat/backend/internal/middleware"
	"github.com/pageza/nutrichat/backend/internal/nutrition"
	"github.com/pageza/nutrichat/backend/internal/service"
	"github.com/pageza/nutrichat/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var answers = []string{"hello", "30", "70", "175", "male", "vegetarian", "traditional", "current",
	"south indian", "maintain", "1,3", "medium"}

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

// newTestAPI wires real services over an in-memory database. A nil store
// leaves exports disabled.
func newTestAPI(t *testing.T, store service.ObjectStore) testAPI {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)

	c, err := catalog.Default()
	require.NoError(t, err)
	calc := nutrition.NewCalculator(c)
	planner := diet.NewPlanner(calc, diet.NewEngine(c, nil, nil))
	engine := conversation.NewEngine(planner, c, nil, conversation.WithClock(func() time.Time {
		return time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	}))

	search := service.NewMealSearchService(db)
	_, err = search.Seed(context.Background(), c)
	require.NoError(t, err)

	auth := service.NewAuthService(db, "test-secret")
	chats := service.NewChatService(db, engine, nil, nil)

	router := gin.New()
	router.Use(middleware.ErrorHandler(nil, api.ClassifyError))
	api.RegisterRoutes(router, api.Dependencies{
		DB:      db,
		Auth:    auth,
		Chats:   chats,
		Exports: service.NewExportService(chats, store, 15*time.Minute),
		Plans:   service.NewPlanService(calc, planner, c, engine),
		Search:  search,
	})
	return testAPI{router: router, db: db, auth: auth}
}

func (a testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		payload = testhelpers.JSONMarshal(t, body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[middleware.ErrorResponse](t, w).Error
}

