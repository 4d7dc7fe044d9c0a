package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
	"github.com/iliyamo/telegram-shop-backend/internal/repository"
)

type fakeProducts struct {
	byID    map[string]model.Product
	created int
	deleted []string
	lastQ   string
}

func newFakeProducts(ps ...model.Product) *fakeProducts {
	f := &fakeProducts{byID: map[string]model.Product{}}
	for _, p := range ps {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) List(context.Context, string) ([]model.Product, error) {
	out := make([]model.Product, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (model.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return model.Product{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) SearchByName(_ context.Context, fragment string) ([]model.Product, error) {
	f.lastQ = fragment
	return nil, nil
}

func (f *fakeProducts) Create(_ context.Context, name string, price int, images []string, description, categoryID *string) (model.Product, error) {
	f.created++
	return model.Product{ID: "p-new", Name: name, Price: price, Images: images, Description: description, CategoryID: categoryID}, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestProductGetNotFound(t *testing.T) {
	h := NewProductHandler(newFakeProducts())

	c, rec := newTestCtx(t, http.MethodGet, "/api/products/ghost", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductCreateValidatesBeforeStore(t *testing.T) {
	store := newFakeProducts()
	h := NewProductHandler(store)

	// price missing
	c, rec := newTestCtx(t, http.MethodPost, "/api/products", `{"name":"Rose","images":["https://a/1.jpg"]}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// images missing
	c, rec = newTestCtx(t, http.MethodPost, "/api/products", `{"name":"Rose","price":100}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 0, store.created, "invalid requests must not reach the store")
}

func TestProductCreate(t *testing.T) {
	store := newFakeProducts()
	h := NewProductHandler(store)

	c, rec := newTestCtx(t, http.MethodPost, "/api/products",
		`{"name":"Rose","price":100,"images":["https://a/1.jpg"],"category_id":"flowers"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var p model.Product
	decodeBody(t, rec, &p)
	assert.Equal(t, "Rose", p.Name)
	assert.Equal(t, 100, p.Price)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, "flowers", *p.CategoryID)
	assert.Nil(t, p.Description, "omitted description stays null")
}

func TestProductSearchRequiresQuery(t *testing.T) {
	store := newFakeProducts()
	h := NewProductHandler(store)

	c, rec := newTestCtx(t, http.MethodGet, "/api/products/search", "")
	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestCtx(t, http.MethodGet, "/api/products/search?q=rose", "")
	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rose", store.lastQ)
}

func TestProductDelete(t *testing.T) {
	store := newFakeProducts(model.Product{ID: "p-1", Name: "Rose"})
	h := NewProductHandler(store)

	c, rec := newTestCtx(t, http.MethodDelete, "/api/products/p-1", "")
	c.SetParamNames("id")
	c.SetParamValues("p-1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestCtx(t, http.MethodDelete, "/api/products/p-1", "")
	c.SetParamNames("id")
	c.SetParamValues("p-1")
	store.byID = map[string]model.Product{}
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
