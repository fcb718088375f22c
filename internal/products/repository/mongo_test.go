package repository

import (
	"testing"
	"time"

	"product-store/internal/products"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPriceFilter(t *testing.T) {
	min, max := 10.0, 20.0

	tests := []struct {
		name string
		rng  products.PriceRange
		want bson.M
	}{
		{
			name: "no bounds matches everything",
			rng:  products.PriceRange{},
			want: bson.M{},
		},
		{
			name: "min only is strictly greater-than",
			rng:  products.PriceRange{Min: &min},
			want: bson.M{"price": bson.M{"$gt": min}},
		},
		{
			name: "max only is strictly less-than",
			rng:  products.PriceRange{Max: &max},
			want: bson.M{"price": bson.M{"$lt": max}},
		},
		{
			name: "both bounds",
			rng:  products.PriceRange{Min: &min, Max: &max},
			want: bson.M{"price": bson.M{"$gt": min, "$lt": max}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := priceFilter(tt.rng)
			if len(got) != len(tt.want) {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
			if len(tt.want) == 0 {
				return
			}
			gotPrice, ok := got["price"].(bson.M)
			if !ok {
				t.Fatalf("want a price sub-document, got %v", got)
			}
			wantPrice := tt.want["price"].(bson.M)
			if len(gotPrice) != len(wantPrice) {
				t.Fatalf("want %v, got %v", wantPrice, gotPrice)
			}
			for op, v := range wantPrice {
				if gotPrice[op] != v {
					t.Fatalf("want %s=%v, got %v", op, v, gotPrice[op])
				}
			}
		})
	}
}

func TestSetDocument(t *testing.T) {
	name := "Widget"
	qty := int64(5)
	price := 12.50
	status := false
	updatedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("only non-nil fields are applied", func(t *testing.T) {
		set := setDocument(products.ProductPatch{Quantity: &qty, UpdatedAt: &updatedAt})
		if len(set) != 2 {
			t.Fatalf("want 2 fields, got %v", set)
		}
		if set["quantity"] != qty {
			t.Fatalf("want quantity %d, got %v", qty, set["quantity"])
		}
		if set["updated_at"] != updatedAt {
			t.Fatalf("want updated_at %v, got %v", updatedAt, set["updated_at"])
		}
	})

	t.Run("all fields", func(t *testing.T) {
		set := setDocument(products.ProductPatch{
			Name:      &name,
			Quantity:  &qty,
			Price:     &price,
			Status:    &status,
			UpdatedAt: &updatedAt,
		})
		if len(set) != 5 {
			t.Fatalf("want 5 fields, got %v", set)
		}
		if set["name"] != name || set["price"] != price || set["status"] != status {
			t.Fatalf("unexpected set document: %v", set)
		}
	})

	t.Run("empty patch produces empty set", func(t *testing.T) {
		if set := setDocument(products.ProductPatch{}); len(set) != 0 {
			t.Fatalf("want empty set, got %v", set)
		}
	})
}
