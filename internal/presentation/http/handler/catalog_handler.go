package handler

import (
	"errors"
	"net/http"

	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the billing screen's catalog and search box
type CatalogHandler struct {
	catalog  billing.CatalogProvider
	searcher *service.CatalogSearcher
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog billing.CatalogProvider, searcher *service.CatalogSearcher) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, searcher: searcher}
}

// searchHit is one search result with its kind spelled out for the client
type searchHit struct {
	Type     string          `json:"type"`
	ID       string          `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Price    billing.Money   `json:"price"`
	Discount billing.Percent `json:"discount"`
	Quantity *int            `json:"quantity,omitempty"`
}

// Get returns the full catalog
func (h *CatalogHandler) Get(c *gin.Context) {
	catalog, err := h.catalog.FetchCatalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog retrieved successfully", catalog)
}

// Search matches q against product and service names and codes. A request
// overtaken by a newer one from the same user gets 409 and should be dropped.
func (h *CatalogHandler) Search(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	matches, err := h.searcher.Search(
		c.Request.Context(),
		sess.UserID().String(),
		c.Query("q"),
		billing.ParseFilter(c.DefaultQuery("type", "all")),
	)
	if err != nil {
		if errors.Is(err, service.ErrSearchSuperseded) {
			response.ErrorWithCode(c, http.StatusConflict, "Search superseded by a newer query")
			return
		}
		response.Error(c, err)
		return
	}

	hits := make([]searchHit, 0)
	for e := range matches {
		switch v := e.(type) {
		case billing.ProductEntry:
			stock := v.Stock
			hits = append(hits, searchHit{
				Type: "product", ID: v.ID, Code: v.Code, Name: v.Name,
				Price: v.Price, Discount: v.DefaultDiscount, Quantity: &stock,
			})
		case billing.ServiceEntry:
			hits = append(hits, searchHit{
				Type: "service", ID: v.ID, Code: v.Code, Name: v.Name,
				Price: v.Price, Discount: v.DefaultDiscount,
			})
		}
	}

	response.OK(c, "Search results", hits)
}
