package ticket

import (
	"strconv"

	"github.com/warp/ledger-engine/tabular"
)

// RevenueReportColumns is the header of the exported revenue report.
var RevenueReportColumns = []string{"evento_id", "evento_nombre", "num_ventas", "total_ingresos"}

// WriteRevenueReport exports the per-event revenue summary, one row per
// event id in ascending order, totals with two decimals.
func WriteRevenueReport(sales []Sale, events []Event, path string) error {
	summary := RevenueByEvent(sales, events)
	rows := make([][]string, len(summary))
	for i, item := range summary {
		rows[i] = []string{
			strconv.Itoa(item.EventID),
			item.Name,
			strconv.Itoa(item.Sales),
			item.Total.StringFixed(2),
		}
	}
	return tabular.Comma.Write(path, RevenueReportColumns, rows)
}
