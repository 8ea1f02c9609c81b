package web

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/beevik/etree"
	"github.com/gabriel-vasile/mimetype"
	"github.com/shelfline/avail"
	"github.com/shelfline/avail/domain"
)

var csvHeader = []string{"code", "name", "available_from", "available_to", "allow_negative"}

// handleExportCSV streams the product catalog as CSV.
func (srv *Server) handleExportCSV(w http.ResponseWriter, req *http.Request, session *avail.Session) {
	products, err := srv.editor.Products()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "fetching products failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)

	writer := csv.NewWriter(w)
	writer.Write(csvHeader)
	for _, product := range products {
		writer.Write([]string{
			product.Code,
			product.Name,
			formatWindowTime(product.AvailableFrom),
			formatWindowTime(product.AvailableTo),
			strconv.FormatBool(product.AllowNegative),
		})
	}
	writer.Flush()
}

func formatWindowTime(value *domain.TimeOfDay) string {
	if value == nil {
		return ""
	}
	return value.String()
}

// handleImport upserts products from an uploaded CSV file. The upload is sniffed
// before parsing and rejected unless it is CSV or plain text.
func (srv *Server) handleImport(w http.ResponseWriter, req *http.Request, session *avail.Session) {
	file, _, err := req.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload failed")
		return
	}

	detected := mimetype.Detect(data)
	if !detected.Is("text/csv") && !detected.Is("text/plain") {
		writeError(w, http.StatusUnsupportedMediaType, fmt.Sprintf("unsupported upload type %s", detected))
		return
	}

	products, err := parseProductCSV(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	imported, err := srv.editor.ImportProducts(products)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "importing products failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}

// parseProductCSV reads rows in the export format. The header row decides the column
// positions; code is required, everything else optional.
func parseProductCSV(data []byte) ([]*domain.Product, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv : %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv upload is empty")
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[name] = i
	}
	if _, ok := columns["code"]; !ok {
		return nil, fmt.Errorf("csv upload must have a 'code' column")
	}

	field := func(record []string, name string) string {
		index, ok := columns[name]
		if !ok || index >= len(record) {
			return ""
		}
		return record[index]
	}

	var products []*domain.Product
	for _, record := range records[1:] {
		product := &domain.Product{
			Code: field(record, "code"),
			Name: field(record, "name"),
		}
		if product.Code == "" {
			return nil, fmt.Errorf("csv row is missing a code")
		}

		if value := field(record, "available_from"); value != "" {
			parsed, err := domain.ParseTimeOfDay(value)
			if err != nil {
				return nil, err
			}
			product.AvailableFrom = &parsed
		}
		if value := field(record, "available_to"); value != "" {
			parsed, err := domain.ParseTimeOfDay(value)
			if err != nil {
				return nil, err
			}
			product.AvailableTo = &parsed
		}
		if value := field(record, "allow_negative"); value != "" {
			allowNegative, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("parsing allow_negative %q : %w", value, err)
			}
			product.AllowNegative = allowNegative
		}

		products = append(products, product)
	}

	return products, nil
}

// handleFeed serves the availability feed as XML.
func (srv *Server) handleFeed(w http.ResponseWriter, req *http.Request) {
	products, err := srv.editor.Products()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "fetching products failed")
		return
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	feed := doc.CreateElement("availability")
	feed.CreateAttr("organization", srv.editor.OrganizationID.String())

	for _, product := range products {
		item := feed.CreateElement("product")
		item.CreateAttr("code", product.Code)
		item.CreateAttr("allow_negative", strconv.FormatBool(product.AllowNegative))
		item.CreateElement("name").SetText(product.Name)
		if product.AvailableFrom != nil {
			item.CreateElement("available_from").SetText(product.AvailableFrom.String())
		}
		if product.AvailableTo != nil {
			item.CreateElement("available_to").SetText(product.AvailableTo.String())
		}
	}

	doc.Indent(2)
	w.Header().Set("Content-Type", "application/xml")
	doc.WriteTo(w)
}
