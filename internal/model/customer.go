// internal/model/customer.go
package model

// CustomerRecord is one customer as seen by the clustering model.
// The field order below is the order of Vector() and must not change
// without retraining.
type CustomerRecord struct {
	Age               int     `db:"age" json:"Age" bson:"Age"`
	Education         int     `db:"education" json:"Education" bson:"Education"`
	MeritalStatus     int     `db:"merital_status" json:"Merital_Status" bson:"Merital_Status"`
	ParentalStatus    int     `db:"parental_status" json:"Parental_Status" bson:"Parental_Status"`
	Children          int     `db:"children" json:"Children" bson:"Children"`
	Income            float64 `db:"income" json:"Income" bson:"Income"`
	TotalSpending     float64 `db:"total_spending" json:"Total_Spending" bson:"Total_Spending"`
	DaysAsCustomer    int     `db:"days_as_customer" json:"Days_as_Customer" bson:"Days_as_Customer"`
	Recency           int     `db:"recency" json:"Recency" bson:"Recency"`
	Wines             int     `db:"wines" json:"Wines" bson:"Wines"`
	Fruits            int     `db:"fruits" json:"Fruits" bson:"Fruits"`
	Meat              int     `db:"meat" json:"Meat" bson:"Meat"`
	Fish              int     `db:"fish" json:"Fish" bson:"Fish"`
	Sweets            int     `db:"sweets" json:"Sweets" bson:"Sweets"`
	Gold              int     `db:"gold" json:"Gold" bson:"Gold"`
	Catalog           int     `db:"catalog" json:"Catalog" bson:"Catalog"`
	Store             int     `db:"store" json:"Store" bson:"Store"`
	DiscountPurchases int     `db:"discount_purchases" json:"Discount_Purchases" bson:"Discount_Purchases"`
	TotalPromo        int     `db:"total_promo" json:"Total_Promo" bson:"Total_Promo"`
	NumWebVisitsMonth int     `db:"num_web_visits_month" json:"NumWebVisitsMonth" bson:"NumWebVisitsMonth"`
}

// FeatureNames lists the JSON names of the record in vector order.
var FeatureNames = []string{
	"Age", "Education", "Merital_Status", "Parental_Status", "Children",
	"Income", "Total_Spending", "Days_as_Customer", "Recency", "Wines",
	"Fruits", "Meat", "Fish", "Sweets", "Gold", "Catalog",
	"Store", "Discount_Purchases", "Total_Promo", "NumWebVisitsMonth",
}

// FeatureColumns lists the database columns in vector order.
var FeatureColumns = []string{
	"age", "education", "merital_status", "parental_status", "children",
	"income", "total_spending", "days_as_customer", "recency", "wines",
	"fruits", "meat", "fish", "sweets", "gold", "catalog",
	"store", "discount_purchases", "total_promo", "num_web_visits_month",
}

// Vector flattens the record in the order the model was trained on.
func (c CustomerRecord) Vector() []float64 {
	return []float64{
		float64(c.Age), float64(c.Education), float64(c.MeritalStatus), float64(c.ParentalStatus), float64(c.Children),
		c.Income, c.TotalSpending, float64(c.DaysAsCustomer), float64(c.Recency), float64(c.Wines),
		float64(c.Fruits), float64(c.Meat), float64(c.Fish), float64(c.Sweets), float64(c.Gold), float64(c.Catalog),
		float64(c.Store), float64(c.DiscountPurchases), float64(c.TotalPromo), float64(c.NumWebVisitsMonth),
	}
}

// ScanTargets returns pointers to every field in column order, for rows.Scan.
func (c *CustomerRecord) ScanTargets() []any {
	return []any{
		&c.Age, &c.Education, &c.MeritalStatus, &c.ParentalStatus, &c.Children,
		&c.Income, &c.TotalSpending, &c.DaysAsCustomer, &c.Recency, &c.Wines,
		&c.Fruits, &c.Meat, &c.Fish, &c.Sweets, &c.Gold, &c.Catalog,
		&c.Store, &c.DiscountPurchases, &c.TotalPromo, &c.NumWebVisitsMonth,
	}
}

// Values returns the field values in column order, for inserts.
func (c CustomerRecord) Values() []any {
	return []any{
		c.Age, c.Education, c.MeritalStatus, c.ParentalStatus, c.Children,
		c.Income, c.TotalSpending, c.DaysAsCustomer, c.Recency, c.Wines,
		c.Fruits, c.Meat, c.Fish, c.Sweets, c.Gold, c.Catalog,
		c.Store, c.DiscountPurchases, c.TotalPromo, c.NumWebVisitsMonth,
	}
}
