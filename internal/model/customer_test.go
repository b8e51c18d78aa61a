package model_test

import (
	"testing"

	"github.com/unclebandit/customer-segmentation/internal/model"
)

func TestVectorOrder(t *testing.T) {
	rec := model.CustomerRecord{
		Age: 1, Education: 2, MeritalStatus: 3, ParentalStatus: 4, Children: 5,
		Income: 6, TotalSpending: 7, DaysAsCustomer: 8, Recency: 9, Wines: 10,
		Fruits: 11, Meat: 12, Fish: 13, Sweets: 14, Gold: 15, Catalog: 16,
		Store: 17, DiscountPurchases: 18, TotalPromo: 19, NumWebVisitsMonth: 20,
	}

	v := rec.Vector()
	if len(v) != len(model.FeatureNames) {
		t.Fatalf("expected %d features, got %d", len(model.FeatureNames), len(v))
	}
	for i, x := range v {
		if x != float64(i+1) {
			t.Errorf("position %d (%s): expected %d, got %v", i, model.FeatureNames[i], i+1, x)
		}
	}

	if len(rec.Values()) != len(model.FeatureColumns) {
		t.Errorf("Values and FeatureColumns disagree: %d vs %d", len(rec.Values()), len(model.FeatureColumns))
	}
	if len(rec.ScanTargets()) != len(model.FeatureColumns) {
		t.Errorf("ScanTargets and FeatureColumns disagree")
	}
}
