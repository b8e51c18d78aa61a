// internal/controller/customer_request.go
package controller

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/unclebandit/customer-segmentation/internal/model"
)

// customerRequest mirrors model.CustomerRecord with pointer fields so a
// missing key can be told apart from a zero value.
type customerRequest struct {
	Age               *int     `json:"Age" validate:"required"`
	Education         *int     `json:"Education" validate:"required"`
	MeritalStatus     *int     `json:"Merital_Status" validate:"required"`
	ParentalStatus    *int     `json:"Parental_Status" validate:"required"`
	Children          *int     `json:"Children" validate:"required"`
	Income            *float64 `json:"Income" validate:"required"`
	TotalSpending     *float64 `json:"Total_Spending" validate:"required"`
	DaysAsCustomer    *int     `json:"Days_as_Customer" validate:"required"`
	Recency           *int     `json:"Recency" validate:"required"`
	Wines             *int     `json:"Wines" validate:"required"`
	Fruits            *int     `json:"Fruits" validate:"required"`
	Meat              *int     `json:"Meat" validate:"required"`
	Fish              *int     `json:"Fish" validate:"required"`
	Sweets            *int     `json:"Sweets" validate:"required"`
	Gold              *int     `json:"Gold" validate:"required"`
	Catalog           *int     `json:"Catalog" validate:"required"`
	Store             *int     `json:"Store" validate:"required"`
	DiscountPurchases *int     `json:"Discount_Purchases" validate:"required"`
	TotalPromo        *int     `json:"Total_Promo" validate:"required"`
	NumWebVisitsMonth *int     `json:"NumWebVisitsMonth" validate:"required"`
}

func (c *customerRequest) record() model.CustomerRecord {
	return model.CustomerRecord{
		Age:               *c.Age,
		Education:         *c.Education,
		MeritalStatus:     *c.MeritalStatus,
		ParentalStatus:    *c.ParentalStatus,
		Children:          *c.Children,
		Income:            *c.Income,
		TotalSpending:     *c.TotalSpending,
		DaysAsCustomer:    *c.DaysAsCustomer,
		Recency:           *c.Recency,
		Wines:             *c.Wines,
		Fruits:            *c.Fruits,
		Meat:              *c.Meat,
		Fish:              *c.Fish,
		Sweets:            *c.Sweets,
		Gold:              *c.Gold,
		Catalog:           *c.Catalog,
		Store:             *c.Store,
		DiscountPurchases: *c.DiscountPurchases,
		TotalPromo:        *c.TotalPromo,
		NumWebVisitsMonth: *c.NumWebVisitsMonth,
	}
}

// validationDetail is one entry of a 422 body, shaped like FastAPI's
type validationDetail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeCustomer parses and validates a request body. A non-empty detail
// list means the request must be answered with 422.
func decodeCustomer(body io.Reader) (model.CustomerRecord, []validationDetail) {
	var req customerRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return model.CustomerRecord{}, []validationDetail{decodeDetail(err)}
	}

	if err := validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return model.CustomerRecord{}, []validationDetail{{Loc: []any{"body"}, Msg: err.Error(), Type: "value_error"}}
		}
		details := make([]validationDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, validationDetail{
				Loc:  []any{"body", fe.Field()},
				Msg:  "field required",
				Type: "value_error.missing",
			})
		}
		return model.CustomerRecord{}, details
	}

	return req.record(), nil
}

func decodeDetail(err error) validationDetail {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		kind := "integer"
		if typeErr.Type != nil && typeErr.Type.Kind() == reflect.Float64 {
			kind = "float"
		}
		return validationDetail{
			Loc:  []any{"body", typeErr.Field},
			Msg:  "value is not a valid " + kind,
			Type: "type_error." + kind,
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return validationDetail{
			Loc:  []any{"body", syntaxErr.Offset},
			Msg:  "JSON decode error",
			Type: "value_error.jsondecode",
		}
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return validationDetail{Loc: []any{"body"}, Msg: "JSON decode error", Type: "value_error.jsondecode"}
	}

	if errors.Is(err, io.EOF) {
		return validationDetail{Loc: []any{"body"}, Msg: "field required", Type: "value_error.missing"}
	}

	return validationDetail{Loc: []any{"body"}, Msg: err.Error(), Type: "value_error"}
}
