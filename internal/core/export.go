package core

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
)

// ErrNothingToExport is returned when the visible page is empty.
var ErrNothingToExport = errors.New("nothing to export")

// utf8BOM makes spreadsheet applications detect UTF-8.
const utf8BOM = "\uFEFF"

// ImageDelimiter joins a product's image URLs into one CSV cell.
const ImageDelimiter = "; "

// ExportColumns is the CSV header row.
var ExportColumns = []string{"ID", "Title", "Price", "Category", "Description", "Images"}

// ExportFilename returns the download name for an export of page taken at t.
func ExportFilename(page int, t time.Time) string {
	return fmt.Sprintf("products_page_%d_%s.csv", page, t.Format("2006-01-02"))
}

// WriteCSV writes items as CSV: a UTF-8 byte-order mark, the header row,
// then one row per product. Fields containing quotes, commas or newlines
// are quoted with embedded quotes doubled.
func WriteCSV(w io.Writer, items []catalog.Product) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	csvWriter := csv.NewWriter(bw)
	if err := csvWriter.Write(ExportColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range items {
		record := []string{
			strconv.Itoa(p.ID),
			p.Title,
			p.Price.String(),
			p.CategoryName(),
			p.Description,
			strings.Join(p.Images, ImageDelimiter),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("write product %d: %w", p.ID, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return bw.Flush()
}

// Export is a rendered CSV export of the visible page.
type Export struct {
	Filename string
	Page     int
	Rows     int
}

// ExportCSV writes the currently visible page to w.
// It returns ErrNothingToExport, without writing anything, when the page is
// empty.
func (s *Service) ExportCSV(w io.Writer) (Export, error) {
	page := s.View()
	if len(page.Items) == 0 {
		return Export{}, ErrNothingToExport
	}

	if err := WriteCSV(w, page.Items); err != nil {
		return Export{}, err
	}

	return Export{
		Filename: ExportFilename(page.CurrentPage, s.now()),
		Page:     page.CurrentPage,
		Rows:     len(page.Items),
	}, nil
}
