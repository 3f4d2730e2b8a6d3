package handlers

import (
	"net/http"

	"github.com/retailnet/orders-api/app/models"
	"github.com/retailnet/orders-api/app/repositories"
	"github.com/unrolled/render"
)

type CatalogHandler struct {
	shopRepo        repositories.ShopRepository
	categoryRepo    repositories.CategoryRepository
	productInfoRepo repositories.ProductInfoRepository
	render          *render.Render
}

func NewCatalogHandler(
	shopRepo repositories.ShopRepository,
	categoryRepo repositories.CategoryRepository,
	productInfoRepo repositories.ProductInfoRepository,
	rnd *render.Render,
) *CatalogHandler {
	return &CatalogHandler{shopRepo, categoryRepo, productInfoRepo, rnd}
}

type shopView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	State bool   `json:"state"`
}

type categoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type productInfoView struct {
	ID         string            `json:"id"`
	Model      string            `json:"model"`
	Product    string            `json:"product"`
	Category   string            `json:"category"`
	Shop       string            `json:"shop,omitempty"`
	Quantity   int               `json:"quantity"`
	Price      string            `json:"price"`
	PriceRRC   string            `json:"price_rrc"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

func newProductInfoView(info *models.ProductInfo) productInfoView {
	v := productInfoView{
		ID:       info.ID,
		Model:    info.Name,
		Product:  info.Product.Name,
		Category: info.Product.Category.Name,
		Shop:     info.Shop.Name,
		Quantity: info.Quantity,
		Price:    info.Price.String(),
		PriceRRC: info.PriceRRC.String(),
	}
	if len(info.ProductParameters) > 0 {
		v.Parameters = make(map[string]string, len(info.ProductParameters))
		for _, pp := range info.ProductParameters {
			v.Parameters[pp.Parameter.Name] = pp.Value
		}
	}
	return v
}

func (h *CatalogHandler) ListShops(w http.ResponseWriter, r *http.Request) {
	shops, err := h.shopRepo.ListAll(r.Context())
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	views := make([]shopView, 0, len(shops))
	for _, s := range shops {
		views = append(views, shopView{ID: s.ID, Name: s.Name, URL: s.URL, State: s.State})
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"Status": true, "Shops": views})
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	var err error
	if shopID := r.URL.Query().Get("shop_id"); shopID != "" {
		categories, err = h.categoryRepo.ListByShop(r.Context(), shopID)
	} else {
		categories, err = h.categoryRepo.List(r.Context())
	}
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, categoryView{ID: c.ID, Name: c.Name})
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"Status": true, "Categories": views})
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	shopID := r.URL.Query().Get("shop_id")
	categoryID := r.URL.Query().Get("category_id")

	infos, err := h.productInfoRepo.Search(r.Context(), shopID, categoryID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	views := make([]productInfoView, 0, len(infos))
	for i := range infos {
		views = append(views, newProductInfoView(&infos[i]))
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"Status": true, "Products": views})
}
