package sales

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"vendora/db"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const defaultTopLimit = 5

// DaySpan is the inclusive day count between two instants: millisecond
// difference over 86,400,000, rounded up. A same-day range counts as one
// day so averages never divide by zero.
func DaySpan(start, end time.Time) int64 {
	ms := end.Sub(start).Milliseconds()
	if ms <= 0 {
		return 1
	}
	days := ms / 86400000
	if ms%86400000 != 0 {
		days++
	}
	return days
}

// reportParams holds the parsed query range and filters.
type reportParams struct {
	Start      time.Time
	End        time.Time
	ProductID  string
	CustomerID string
	Limit      int64
}

// parseReportParams requires startDate and endDate (YYYY-MM-DD).
func parseReportParams(r *http.Request) (reportParams, error) {
	q := r.URL.Query()

	start, err := time.Parse("2006-01-02", q.Get("startDate"))
	if err != nil {
		return reportParams{}, fmt.Errorf("invalid or missing startDate")
	}
	end, err := time.Parse("2006-01-02", q.Get("endDate"))
	if err != nil {
		return reportParams{}, fmt.Errorf("invalid or missing endDate")
	}
	if end.Before(start) {
		return reportParams{}, fmt.Errorf("endDate before startDate")
	}

	limit := int64(defaultTopLimit)
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}

	return reportParams{
		Start:      start,
		End:        end.Add(24*time.Hour - time.Millisecond), // inclusive end day
		ProductID:  q.Get("productId"),
		CustomerID: q.Get("customerId"),
		Limit:      limit,
	}, nil
}

func (p reportParams) matchStage() bson.D {
	match := bson.M{"salesDate": bson.M{"$gte": p.Start, "$lte": p.End}}
	if p.ProductID != "" {
		match["productId"] = p.ProductID
	}
	if p.CustomerID != "" {
		match["customerId"] = p.CustomerID
	}
	return bson.D{{Key: "$match", Value: match}}
}

// productRow is one grouped line of the by-product reports.
type productRow struct {
	ProductID   string  `bson:"_id"`
	ProductName string  `bson:"productName"`
	Quantity    int     `bson:"totalQuantity"`
	TotalSales  float64 `bson:"totalSales"`
}

// pairRow is one grouped line of the product+customer report.
type pairRow struct {
	Key struct {
		ProductID  string `bson:"productId"`
		CustomerID string `bson:"customerId"`
	} `bson:"_id"`
	Quantity   int     `bson:"totalQuantity"`
	TotalSales float64 `bson:"totalSales"`
}

func totalSales(ctx context.Context, p reportParams) (float64, error) {
	pipeline := mongo.Pipeline{
		p.matchStage(),
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$totalPrice"},
		}}},
	}
	cursor, err := db.SalesCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// salesByProduct groups the range by product and joins the product name.
func salesByProduct(ctx context.Context, p reportParams, sorted bool, limit int64) ([]productRow, error) {
	pipeline := mongo.Pipeline{
		p.matchStage(),
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           "$productId",
			"totalQuantity": bson.M{"$sum": "$quantity"},
			"totalSales":    bson.M{"$sum": "$totalPrice"},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "_id",
			"foreignField": "productId",
			"as":           "product",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"productName": bson.M{"$ifNull": bson.A{
				bson.M{"$arrayElemAt": bson.A{"$product.name", 0}}, "unknown",
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"product": 0}}},
	}
	if sorted {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.M{"totalSales": -1}}})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	cursor, err := db.SalesCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []productRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func salesByProductCustomer(ctx context.Context, p reportParams) ([]pairRow, error) {
	pipeline := mongo.Pipeline{
		p.matchStage(),
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           bson.M{"productId": "$productId", "customerId": "$customerId"},
			"totalQuantity": bson.M{"$sum": "$quantity"},
			"totalSales":    bson.M{"$sum": "$totalPrice"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"totalSales": -1}}},
	}
	cursor, err := db.SalesCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []pairRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// TotalSalesReport renders the summed totalPrice over the range as a PDF.
func TotalSalesReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	p, err := parseReportParams(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	total, err := totalSales(ctx, p)
	if err != nil {
		log.Println("TotalSalesReport aggregate error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	lines := []string{fmt.Sprintf("Total sales: %.2f", total)}
	writeReportPDF(w, "Total Sales Report", p, lines, "total-sales")
}

// SalesByProductReport renders per-product aggregates as a PDF.
func SalesByProductReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	p, err := parseReportParams(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := salesByProduct(ctx, p, false, 0)
	if err != nil {
		log.Println("SalesByProductReport aggregate error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s (%s): qty %d, sales %.2f",
			row.ProductName, row.ProductID, row.Quantity, row.TotalSales))
	}
	writeReportPDF(w, "Sales By Product", p, lines, "sales-by-product")
}

// FilteredSalesReport renders (product, customer) pair aggregates as a PDF.
func FilteredSalesReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	p, err := parseReportParams(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := salesByProductCustomer(ctx, p)
	if err != nil {
		log.Println("FilteredSalesReport aggregate error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("product %s / customer %s: qty %d, sales %.2f",
			row.Key.ProductID, row.Key.CustomerID, row.Quantity, row.TotalSales))
	}
	writeReportPDF(w, "Filtered Sales", p, lines, "filtered-sales")
}

// AverageSalesReport renders total sales over the inclusive day span.
func AverageSalesReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	p, err := parseReportParams(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	total, err := totalSales(ctx, p)
	if err != nil {
		log.Println("AverageSalesReport aggregate error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	days := DaySpan(p.Start, p.End)
	lines := []string{
		fmt.Sprintf("Total sales: %.2f", total),
		fmt.Sprintf("Days in range: %d", days),
		fmt.Sprintf("Average sales per day: %.2f", total/float64(days)),
	}
	writeReportPDF(w, "Average Sales Per Day", p, lines, "average-sales")
}

// TopProductsReport renders the best sellers, descending, capped by limit.
func TopProductsReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	p, err := parseReportParams(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := salesByProduct(ctx, p, true, p.Limit)
	if err != nil {
		log.Println("TopProductsReport aggregate error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		lines = append(lines, fmt.Sprintf("#%d %s (%s): qty %d, sales %.2f",
			i+1, row.ProductName, row.ProductID, row.Quantity, row.TotalSales))
	}
	writeReportPDF(w, "Top Selling Products", p, lines, "top-products")
}
