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

// fakeCart mirrors the store's merge semantics in memory.
type fakeCart struct {
	lines map[string]int // "user/product" -> quantity
}

func newFakeCart() *fakeCart { return &fakeCart{lines: map[string]int{}} }

func (f *fakeCart) key(u, p string) string { return u + "/" + p }

func (f *fakeCart) Add(_ context.Context, userID, productID string, qty int) (model.CartLine, error) {
	if qty < 1 {
		return model.CartLine{}, repository.ValidationError{Msg: "quantity must be a positive integer"}
	}
	f.lines[f.key(userID, productID)] += qty
	return model.CartLine{UserID: userID, ProductID: productID, Quantity: f.lines[f.key(userID, productID)]}, nil
}

func (f *fakeCart) SetQuantity(_ context.Context, userID, productID string, qty int) (model.CartLine, error) {
	if qty < 1 {
		return model.CartLine{}, repository.ValidationError{Msg: "quantity must be a positive integer"}
	}
	if _, ok := f.lines[f.key(userID, productID)]; !ok {
		return model.CartLine{}, repository.ErrNotFound
	}
	f.lines[f.key(userID, productID)] = qty
	return model.CartLine{UserID: userID, ProductID: productID, Quantity: qty}, nil
}

func (f *fakeCart) Remove(_ context.Context, userID, productID string) error {
	delete(f.lines, f.key(userID, productID))
	return nil
}

func (f *fakeCart) Clear(_ context.Context, userID string) error {
	for k := range f.lines {
		delete(f.lines, k)
	}
	return nil
}

func (f *fakeCart) Items(context.Context, string) ([]model.CartItem, error) { return nil, nil }

func TestCartAddMergesQuantities(t *testing.T) {
	cart := newFakeCart()
	h := NewCartHandler(cart)

	c, rec := newTestCtx(t, http.MethodPost, "/api/cart", `{"user_id":"u1","product_id":"p1","quantity":2}`)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newTestCtx(t, http.MethodPost, "/api/cart", `{"user_id":"u1","product_id":"p1","quantity":3}`)
	require.NoError(t, h.Add(c))

	var line model.CartLine
	decodeBody(t, rec, &line)
	assert.Equal(t, 5, line.Quantity, "repeated add merges, not overwrites")
}

func TestCartAddDefaultsToOne(t *testing.T) {
	cart := newFakeCart()
	h := NewCartHandler(cart)

	c, rec := newTestCtx(t, http.MethodPost, "/api/cart", `{"user_id":"u1","product_id":"p1"}`)
	require.NoError(t, h.Add(c))

	var line model.CartLine
	decodeBody(t, rec, &line)
	assert.Equal(t, 1, line.Quantity)
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	h := NewCartHandler(newFakeCart())

	for _, body := range []string{
		`{"user_id":"u1","product_id":"p1","quantity":0}`,
		`{"user_id":"u1","product_id":"p1","quantity":-2}`,
	} {
		c, rec := newTestCtx(t, http.MethodPost, "/api/cart", body)
		require.NoError(t, h.Add(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestCartSetQuantityIsAbsolute(t *testing.T) {
	cart := newFakeCart()
	h := NewCartHandler(cart)

	c, _ := newTestCtx(t, http.MethodPost, "/api/cart", `{"user_id":"u1","product_id":"p1","quantity":2}`)
	require.NoError(t, h.Add(c))

	c, rec := newTestCtx(t, http.MethodPut, "/api/cart", `{"user_id":"u1","product_id":"p1","quantity":7}`)
	require.NoError(t, h.SetQuantity(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var line model.CartLine
	decodeBody(t, rec, &line)
	assert.Equal(t, 7, line.Quantity)
}

func TestCartSetQuantityMissingLine(t *testing.T) {
	h := NewCartHandler(newFakeCart())

	c, rec := newTestCtx(t, http.MethodPut, "/api/cart", `{"user_id":"u1","product_id":"ghost","quantity":3}`)
	require.NoError(t, h.SetQuantity(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartRemoveIsIdempotent(t *testing.T) {
	h := NewCartHandler(newFakeCart())

	c, rec := newTestCtx(t, http.MethodDelete, "/api/cart/u1/ghost", "")
	c.SetParamNames("userID", "productID")
	c.SetParamValues("u1", "ghost")
	require.NoError(t, h.Remove(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
