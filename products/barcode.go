package products

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"swaadha/db"
	"swaadha/models"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// BarcodeLabels renders a printable A4 PDF sheet of shelf labels for a
// product (or one of its variations): name, unit, price and a QR code of
// the SKU, repeated ?qty= times (defaults to 1, capped at 120).
func BarcodeLabels(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": ps.ByName("id")}).Decode(&product); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	sku := product.SKU
	unitType := ""
	price := product.Price
	if variationID := r.URL.Query().Get("variation"); variationID != "" {
		found := false
		for _, v := range product.Variations {
			if v.ID == variationID {
				sku = v.SKU
				unitType = v.UnitType
				price = v.Price
				found = true
				break
			}
		}
		if !found {
			http.Error(w, "Variation not found", http.StatusNotFound)
			return
		}
	} else if len(product.Variations) > 0 {
		v := product.Variations[0]
		sku, unitType, price = v.SKU, v.UnitType, v.Price
	}

	qty := parseIntDefault(r.URL.Query().Get("qty"), 1)
	if qty < 1 {
		qty = 1
	}
	if qty > 120 {
		qty = 120
	}

	qrPNG, err := qrcode.Encode(sku, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	const (
		labelW  = 63.0
		labelH  = 34.0
		marginX = 7.0
		marginY = 10.0
		cols    = 3
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("sku-qr", imageOpts, bytes.NewReader(qrPNG))

	_, pageH := pdf.GetPageSize()
	rowsPerPage := int((pageH - 2*marginY) / labelH)

	for i := 0; i < qty; i++ {
		pos := i % (cols * rowsPerPage)
		if i > 0 && pos == 0 {
			pdf.AddPage()
		}
		col := pos % cols
		row := pos / cols
		x := marginX + float64(col)*labelW
		y := marginY + float64(row)*labelH

		pdf.Rect(x, y, labelW-2, labelH-2, "D")

		pdf.SetFont("Arial", "B", 9)
		pdf.SetXY(x+2, y+2)
		pdf.CellFormat(labelW-24, 5, pdf.UnicodeTranslatorFromDescriptor("")(product.Name), "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "", 8)
		if unitType != "" {
			pdf.SetXY(x+2, y+8)
			pdf.CellFormat(labelW-24, 4, unitType, "", 0, "L", false, 0, "")
		}
		pdf.SetXY(x+2, y+13)
		pdf.CellFormat(labelW-24, 4, fmt.Sprintf("Rs. %.2f", price), "", 0, "L", false, 0, "")
		pdf.SetXY(x+2, y+labelH-8)
		pdf.SetFont("Arial", "", 6)
		pdf.CellFormat(labelW-24, 4, sku, "", 0, "L", false, 0, "")

		pdf.ImageOptions("sku-qr", x+labelW-22, y+4, 18, 18, false, imageOpts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=labels-"+sku+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
