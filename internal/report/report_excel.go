package report

import (
	"fmt"
	"time"

	"github.com/Picancianmartin/UniformesCoachSite/internal/order"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary = "Resumo Geral"
	sheetOrders  = "Pedidos"

	brlFormat = `"R$ "#,##0.00`
)

type workbookInput struct {
	From         time.Time
	To           time.Time
	Totals       Totals
	ByCollection []BucketTotal
	ByPayment    []BucketTotal
	Items        []ItemRow
}

// buildWorkbook renders the sales report the way the store owner reads
// it: a summary sheet with the KPIs and breakdown tables, plus a flat
// "Pedidos" sheet with one row per sold line.
func buildWorkbook(in workbookInput) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetOrders); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"007BBA"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: "000D23"},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	brlFmt := brlFormat
	brlStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &brlFmt})
	if err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, in, headerStyle, titleStyle, brlStyle); err != nil {
		return nil, err
	}
	if err := writeOrdersSheet(f, in.Items, headerStyle, brlStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, in workbookInput, headerStyle, titleStyle, brlStyle int) error {
	if err := f.MergeCell(sheetSummary, "A1", "C1"); err != nil {
		return err
	}
	f.SetCellValue(sheetSummary, "A1", "RELATÓRIO DE VENDAS - COACH STORE")
	f.SetCellStyle(sheetSummary, "A1", "C1", titleStyle)
	f.SetRowHeight(sheetSummary, 1, 30)

	if err := f.MergeCell(sheetSummary, "A2", "C2"); err != nil {
		return err
	}
	f.SetCellValue(sheetSummary, "A2", fmt.Sprintf("Período: %s - %s",
		in.From.Format("02/01/2006"), in.To.Format("02/01/2006")))

	// KPIs
	row := 4
	f.SetCellValue(sheetSummary, cell("A", row), "Indicador")
	f.SetCellValue(sheetSummary, cell("B", row), "Valor")
	f.SetCellStyle(sheetSummary, cell("A", row), cell("B", row), headerStyle)

	kpis := []struct {
		name     string
		value    any
		currency bool
	}{
		{"Faturamento Total", in.Totals.Revenue.InexactFloat64(), true},
		{"Total de Pedidos", in.Totals.Orders, false},
		{"Peças Vendidas", in.Totals.Pieces, false},
		{"Ticket Médio", averageTicket(in.Totals).InexactFloat64(), true},
	}
	for _, kpi := range kpis {
		row++
		f.SetCellValue(sheetSummary, cell("A", row), kpi.name)
		f.SetCellValue(sheetSummary, cell("B", row), kpi.value)
		if kpi.currency {
			f.SetCellStyle(sheetSummary, cell("B", row), cell("B", row), brlStyle)
		}
	}

	row = writeBucketTable(f, row+2, "Vendas por Coleção", "Coleção", in.ByCollection, headerStyle, brlStyle)
	writeBucketTable(f, row+2, "Vendas por Pagamento", "Pagamento", in.ByPayment, headerStyle, brlStyle)

	f.SetColWidth(sheetSummary, "A", "A", 28)
	f.SetColWidth(sheetSummary, "B", "C", 20)
	return nil
}

// writeBucketTable writes one breakdown table starting at startRow and
// returns the last row it used.
func writeBucketTable(f *excelize.File, startRow int, title, nameHeader string, buckets []BucketTotal, headerStyle, brlStyle int) int {
	row := startRow
	f.SetCellValue(sheetSummary, cell("A", row), title)
	f.SetCellStyle(sheetSummary, cell("A", row), cell("A", row), headerStyle)

	row++
	f.SetCellValue(sheetSummary, cell("A", row), nameHeader)
	f.SetCellValue(sheetSummary, cell("B", row), "Faturamento")
	f.SetCellValue(sheetSummary, cell("C", row), "Peças")
	f.SetCellStyle(sheetSummary, cell("A", row), cell("C", row), headerStyle)

	for _, b := range buckets {
		row++
		f.SetCellValue(sheetSummary, cell("A", row), bucketLabel(b.Name))
		f.SetCellValue(sheetSummary, cell("B", row), b.Revenue.InexactFloat64())
		f.SetCellStyle(sheetSummary, cell("B", row), cell("B", row), brlStyle)
		f.SetCellValue(sheetSummary, cell("C", row), b.Pieces)
	}
	return row
}

var ordersHeaders = []string{
	"Pedido", "Data", "Cliente", "Status", "Pagamento",
	"Produto", "Coleção", "Tamanho", "Qtd", "Preço Unit.", "Total",
}

func writeOrdersSheet(f *excelize.File, items []ItemRow, headerStyle, brlStyle int) error {
	for i, h := range ordersHeaders {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetOrders, cell(col, 1), h)
	}
	f.SetCellStyle(sheetOrders, "A1", cell("K", 1), headerStyle)

	for i, it := range items {
		row := i + 2
		f.SetCellValue(sheetOrders, cell("A", row), it.OrderNumber)
		f.SetCellValue(sheetOrders, cell("B", row), it.PlacedAt.Format("02/01/2006 15:04"))
		f.SetCellValue(sheetOrders, cell("C", row), it.CustomerName)
		f.SetCellValue(sheetOrders, cell("D", row), order.StatusLabel(it.Status))
		f.SetCellValue(sheetOrders, cell("E", row), bucketLabel(it.PaymentMethod))
		f.SetCellValue(sheetOrders, cell("F", row), it.ProductName)
		f.SetCellValue(sheetOrders, cell("G", row), it.Collection)
		f.SetCellValue(sheetOrders, cell("H", row), sizeLabel(it))
		f.SetCellValue(sheetOrders, cell("I", row), it.Quantity)
		f.SetCellValue(sheetOrders, cell("J", row), it.UnitPrice.InexactFloat64())
		f.SetCellValue(sheetOrders, cell("K", row), it.TotalPrice.InexactFloat64())
		f.SetCellStyle(sheetOrders, cell("J", row), cell("K", row), brlStyle)
	}

	f.SetColWidth(sheetOrders, "A", "A", 18)
	f.SetColWidth(sheetOrders, "B", "B", 17)
	f.SetColWidth(sheetOrders, "C", "G", 22)
	f.SetColWidth(sheetOrders, "H", "H", 16)
	f.SetColWidth(sheetOrders, "I", "I", 6)
	f.SetColWidth(sheetOrders, "J", "K", 14)
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func sizeLabel(it ItemRow) string {
	if it.SizeStandard != "" {
		return it.SizeStandard
	}
	if it.SizeTop != "" || it.SizeBottom != "" {
		return fmt.Sprintf("Blusa %s / Calça %s", it.SizeTop, it.SizeBottom)
	}
	return "-"
}

func bucketLabel(name string) string {
	switch name {
	case order.PaymentMethodPix:
		return "Pix"
	case order.PaymentMethodPickup:
		return "Na retirada"
	default:
		return name
	}
}
