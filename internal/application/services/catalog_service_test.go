package services

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestCatalogService_ProductsCached(t *testing.T) {
	var requests int
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"success":true,"data":[
			{"id":1,"name":"Tomato","price":40,"categoryId":10},
			{"id":2,"name":"Bread","price":35,"categoryId":20}
		]}`))
	})
	svc := NewCatalogService(gw, func() string { return "" }, nil, time.Minute, nil)

	for i := 0; i < 3; i++ {
		products, err := svc.Products(context.Background())
		if err != nil {
			t.Fatalf("Products() error = %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("Products() len = %d, want 2", len(products))
		}
	}
	if requests != 1 {
		t.Errorf("backend requests = %d, want 1 (cache hit)", requests)
	}

	svc.Invalidate()
	if _, err := svc.Products(context.Background()); err != nil {
		t.Fatalf("Products() after Invalidate error = %v", err)
	}
	if requests != 2 {
		t.Errorf("backend requests after Invalidate = %d, want 2", requests)
	}
}

func TestCatalogService_ProductsByCategory(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"name":"Tomato","categoryId":10},
			{"id":2,"name":"Bread","categoryId":20},
			{"id":3,"name":"Onion","categoryId":10}
		]`))
	})
	svc := NewCatalogService(gw, func() string { return "" }, nil, time.Minute, nil)

	filtered, err := svc.ProductsByCategory(context.Background(), 10)
	if err != nil {
		t.Fatalf("ProductsByCategory() error = %v", err)
	}
	if len(filtered) != 2 || filtered[0].ID != 1 || filtered[1].ID != 3 {
		t.Errorf("ProductsByCategory() = %+v, want ids [1 3]", filtered)
	}
}

func TestCatalogService_Category(t *testing.T) {
	var gotPath string
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true,"data":{"id":10,"name":"Vegetables"}}`))
	})
	svc := NewCatalogService(gw, func() string { return "tok-001" }, nil, time.Minute, nil)

	category, err := svc.Category(context.Background(), 10)
	if err != nil {
		t.Fatalf("Category() error = %v", err)
	}
	if gotPath != "/category/10" {
		t.Errorf("path = %q, want /category/10", gotPath)
	}
	if category.Name != "Vegetables" {
		t.Errorf("Name = %q, want Vegetables", category.Name)
	}
}

func TestCatalogService_ThumbnailWithoutCache(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {})
	svc := NewCatalogService(gw, func() string { return "" }, nil, time.Minute, nil)

	got, err := svc.Thumbnail("https://cdn.example.com/p/1.jpg")
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	if got != "https://cdn.example.com/p/1.jpg" {
		t.Errorf("Thumbnail() = %q, want pass-through", got)
	}
}
