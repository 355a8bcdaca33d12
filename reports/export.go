package reports

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"swaadha/db"
	"swaadha/models"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderRow struct {
	OrderID       string  `json:"order_id"`
	Date          string  `json:"date"`
	Source        string  `json:"source"`
	Customer      string  `json:"customer"`
	Phone         string  `json:"phone"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
	Subtotal      float64 `json:"subtotal"`
	Shipping      float64 `json:"shipping"`
	GrandTotal    float64 `json:"grand_total"`
}

type productRow struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// OrderReport exports online and POS orders over an optional date range.
// ?format=xlsx downloads a spreadsheet; the default is JSON.
func OrderReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	filter, err := parseRange(r, "order_date")
	if err != nil {
		http.Error(w, "Dates must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	status := r.URL.Query().Get("status")

	rows, err := collectOrderRows(ctx, filter, status)
	if err != nil {
		log.Println("OrderReport error:", err)
		http.Error(w, "Could not build report", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") != "xlsx" {
		utils.RespondWithJSON(w, http.StatusOK, rows)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"Order ID", "Date", "Source", "Customer", "Phone", "Status", "Payment", "Subtotal", "Shipping", "Grand Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		values := []any{row.OrderID, row.Date, row.Source, row.Customer, row.Phone,
			row.Status, row.PaymentMethod, row.Subtotal, row.Shipping, row.GrandTotal}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	writeWorkbook(w, f, fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02")))
}

// collectOrderRows merges online and POS orders. A status filter applies
// to online orders only; POS sales have no fulfilment flow.
func collectOrderRows(ctx context.Context, filter bson.M, status string) ([]orderRow, error) {
	rows := []orderRow{}

	onlineFilter := bson.M{}
	for k, v := range filter {
		onlineFilter[k] = v
	}
	if status != "" {
		onlineFilter["status"] = status
	}

	cursor, err := db.OrdersCollection.Find(ctx, onlineFilter,
		options.Find().SetSort(bson.M{"order_date": -1}))
	if err != nil {
		return nil, err
	}
	var online []models.Order
	if err := cursor.All(ctx, &online); err != nil {
		return nil, err
	}
	for _, o := range online {
		rows = append(rows, orderRow{
			OrderID:       o.ID,
			Date:          o.OrderDate.Format("2006-01-02 15:04"),
			Source:        "online",
			Customer:      o.FullName,
			Phone:         o.PhoneNumber,
			Status:        o.Status,
			PaymentMethod: o.PaymentMethod,
			Subtotal:      o.TotalPrice,
			Shipping:      o.ShippingCost,
			GrandTotal:    o.GrandTotal,
		})
	}

	if status != "" && status != models.OrderDelivered {
		return rows, nil
	}

	posCursor, err := db.PosOrdersCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"order_date": -1}))
	if err != nil {
		return nil, err
	}
	var counter []models.PosOrder
	if err := posCursor.All(ctx, &counter); err != nil {
		return nil, err
	}
	for _, o := range counter {
		rows = append(rows, orderRow{
			OrderID:       o.ID,
			Date:          o.OrderDate.Format("2006-01-02 15:04"),
			Source:        "pos",
			Customer:      o.FullName,
			Phone:         o.PhoneNumber,
			Status:        models.OrderDelivered,
			PaymentMethod: o.PaymentMethod,
			Subtotal:      o.Subtotal,
			GrandTotal:    o.GrandTotal,
		})
	}
	return rows, nil
}

// ProductReport aggregates units sold and revenue per product across
// online and POS orders, best sellers first.
func ProductReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	filter, err := parseRange(r, "order_date")
	if err != nil {
		http.Error(w, "Dates must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	rows, err := collectProductRows(ctx, filter)
	if err != nil {
		log.Println("ProductReport error:", err)
		http.Error(w, "Could not build report", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") != "xlsx" {
		utils.RespondWithJSON(w, http.StatusOK, rows)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"Product ID", "Name", "Units Sold", "Revenue"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		values := []any{row.ProductID, row.Name, row.UnitsSold, row.Revenue}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	writeWorkbook(w, f, fmt.Sprintf("products-%s.xlsx", time.Now().Format("2006-01-02")))
}

func collectProductRows(ctx context.Context, filter bson.M) ([]productRow, error) {
	type agg struct {
		ProductID string  `bson:"_id"`
		Name      string  `bson:"name"`
		Units     int     `bson:"units"`
		Revenue   float64 `bson:"revenue"`
	}

	merged := map[string]*productRow{}
	pipelineFor := func(itemsField string) []bson.M {
		return []bson.M{
			{"$match": filter},
			{"$unwind": "$" + itemsField},
			{"$group": bson.M{
				"_id":     "$" + itemsField + ".productId",
				"name":    bson.M{"$last": "$" + itemsField + ".name"},
				"units":   bson.M{"$sum": "$" + itemsField + ".quantity"},
				"revenue": bson.M{"$sum": bson.M{"$multiply": []string{"$" + itemsField + ".price", "$" + itemsField + ".quantity"}}},
			}},
		}
	}

	sources := []struct {
		coll  string
		field string
	}{
		{"orders", "cart_items"},
		{"pos", "order_items"},
	}
	for _, src := range sources {
		coll := db.OrdersCollection
		if src.coll == "pos" {
			coll = db.PosOrdersCollection
		}
		cursor, err := coll.Aggregate(ctx, pipelineFor(src.field))
		if err != nil {
			return nil, err
		}
		var out []agg
		if err := cursor.All(ctx, &out); err != nil {
			return nil, err
		}
		for _, a := range out {
			row, ok := merged[a.ProductID]
			if !ok {
				row = &productRow{ProductID: a.ProductID, Name: a.Name}
				merged[a.ProductID] = row
			}
			row.UnitsSold += a.Units
			row.Revenue = utils.Round2(row.Revenue + a.Revenue)
		}
	}

	rows := make([]productRow, 0, len(merged))
	for _, row := range merged {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UnitsSold > rows[j].UnitsSold })
	return rows, nil
}

func writeWorkbook(w http.ResponseWriter, f *excelize.File, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(w); err != nil {
		log.Println("workbook write error:", err)
	}
}
