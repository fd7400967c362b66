package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/application/session"
	"github.com/autospa/autospa-api/internal/domain/billing"
	billingmocks "github.com/autospa/autospa-api/internal/domain/billing/mocks"
	"github.com/autospa/autospa-api/internal/domain/repository/mocks"
	"github.com/autospa/autospa-api/internal/presentation/http/handler"
	"github.com/autospa/autospa-api/internal/presentation/http/middleware"
	"github.com/autospa/autospa-api/internal/presentation/http/validation"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const oilFilterID = "0d6a3f5e-5a37-4c55-9b0e-2f1f6a1c0001"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.Register(); err != nil {
		panic(err)
	}
	m.Run()
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type billingAPI struct {
	router   *gin.Engine
	token    string
	billRepo *mocks.MockBillRepository
}

func newBillingAPI(t *testing.T) *billingAPI {
	ctrl := gomock.NewController(t)
	catalog := billingmocks.NewMockCatalogProvider(ctrl)
	catalog.EXPECT().FetchCatalog(gomock.Any()).Return(billing.Catalog{
		Products: []billing.ProductEntry{{
			ID: oilFilterID, Code: "OF-01", Name: "Oil Filter",
			Price: billing.MoneyFromMajor(450), Stock: 5,
		}},
	}, nil).AnyTimes()
	billRepo := mocks.NewMockBillRepository(ctrl)

	drafts := service.NewDraftService(catalog, service.NewBillSubmitter(billRepo, nil), time.Hour)
	searcher := service.NewCatalogSearcher(catalog, 0)
	drafth := handler.NewDraftHandler(drafts)
	catalogh := handler.NewCatalogHandler(catalog, searcher)

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, time.Hour)
	token, err := jwtManager.GenerateAccessToken(uuid.New(), "desk@autospa.local", "Front Desk", "staff", []string{"create-bills"})
	require.NoError(t, err)

	router := gin.New()
	api := router.Group("", middleware.AuthMiddleware(jwtManager, session.NewRevocations()))
	api.GET("/catalog/search", catalogh.Search)
	api.POST("/drafts", drafth.Create)
	api.GET("/drafts/:id", drafth.Get)
	api.POST("/drafts/:id/items", drafth.AddItem)
	api.PUT("/drafts/:id/items/:index/quantity", drafth.SetQuantity)
	api.PUT("/drafts/:id/items/:index/discount", drafth.SetItemDiscount)
	api.PUT("/drafts/:id/discount", drafth.SetOverallDiscount)
	api.PUT("/drafts/:id/header", drafth.SetHeader)
	api.POST("/drafts/:id/submit", drafth.Submit)

	return &billingAPI{router: router, token: token, billRepo: billRepo}
}

func (a *billingAPI) call(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestDraftHandler_CheckoutFlow(t *testing.T) {
	api := newBillingAPI(t)
	api.billRepo.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil)

	w, env := api.call(t, http.MethodPost, "/drafts", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var draft struct {
		ID    string `json:"id"`
		State string `json:"state"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	assert.Equal(t, "empty", draft.State)

	w, _ = api.call(t, http.MethodPost, "/drafts/"+draft.ID+"/items", `{"kind":"product","id":"`+oilFilterID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = api.call(t, http.MethodPut, "/drafts/"+draft.ID+"/header", `{"customer":{"vehicleNumber":"KA01AB1234"},"paymentMethod":"UPI"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = api.call(t, http.MethodPost, "/drafts/"+draft.ID+"/submit?clear=true", "")
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	assert.Equal(t, "Bill submitted successfully", env.Message)

	_, env = api.call(t, http.MethodGet, "/drafts/"+draft.ID, "")
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	assert.Equal(t, "empty", draft.State)
}

func TestDraftHandler_HeaderValidation(t *testing.T) {
	api := newBillingAPI(t)
	_, env := api.call(t, http.MethodPost, "/drafts", "")
	var draft struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &draft))

	w, _ := api.call(t, http.MethodPut, "/drafts/"+draft.ID+"/header", `{"customer":{"vehicleNumber":"KA#1"},"paymentMethod":"cheque"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDraftHandler_RejectsOutOfRangeLineEdits(t *testing.T) {
	api := newBillingAPI(t)
	_, env := api.call(t, http.MethodPost, "/drafts", "")
	var draft struct {
		ID    string `json:"id"`
		Draft struct {
			Items []struct {
				Quantity int     `json:"quantity"`
				Discount float64 `json:"discount"`
				Total    float64 `json:"total"`
			} `json:"items"`
		} `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	w, _ := api.call(t, http.MethodPost, "/drafts/"+draft.ID+"/items", `{"kind":"product","id":"`+oilFilterID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	testCases := []struct {
		name string
		path string
		body string
	}{
		{name: "quantity past ceiling", path: "/items/0/quantity", body: `{"quantity":10000000000}`},
		{name: "zero quantity", path: "/items/0/quantity", body: `{"quantity":0}`},
		{name: "item discount just above hundred", path: "/items/0/discount", body: `{"discount":100.004}`},
		{name: "item discount just below zero", path: "/items/0/discount", body: `{"discount":-0.004}`},
		{name: "overall discount just above hundred", path: "/discount", body: `{"discount":100.004}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := api.call(t, http.MethodPut, "/drafts/"+draft.ID+tc.path, tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, env.Message)
		})
	}

	_, env = api.call(t, http.MethodGet, "/drafts/"+draft.ID, "")
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	items := draft.Draft.Items
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, float64(0), items[0].Discount)
	assert.Equal(t, 450.0, items[0].Total)
}

func TestDraftHandler_UnknownDraft(t *testing.T) {
	api := newBillingAPI(t)

	w, env := api.call(t, http.MethodGet, "/drafts/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestCatalogHandler_Search(t *testing.T) {
	api := newBillingAPI(t)

	w, env := api.call(t, http.MethodGet, "/catalog/search?q=filter", "")
	require.Equal(t, http.StatusOK, w.Code)

	var hits []struct {
		Type     string `json:"type"`
		ID       string `json:"id"`
		Quantity *int   `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &hits))
	require.Len(t, hits, 1)
	assert.Equal(t, "product", hits[0].Type)
	require.NotNil(t, hits[0].Quantity)
	assert.Equal(t, 5, *hits[0].Quantity)
}
