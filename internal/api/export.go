package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marketbriefs/marketbriefs/internal/domain/dto"
	"github.com/marketbriefs/marketbriefs/internal/domain/models"
	"github.com/marketbriefs/marketbriefs/internal/service"
)

// Export handles GET /api/v1/export/:symbol requests.
//
// Path Parameters:
//   - symbol (string, required): Ticker symbol.
//
// Query Parameters:
//   - range (string, optional): One of 7d, 1mo, 6mo, 1y. Defaults to 1mo.
//
// Responses:
//   - 200 OK: CSV attachment with a metrics preamble and OHLCV rows.
//   - 400 Bad Request: Unsupported range.
//   - 404 Not Found: No bars stored inside the requested window.
//   - 500 Internal Server Error: Storage failure.
//
// Export godoc
// @Summary      Export price history as CSV
// @Description  Streams the symbol's windowed history and metrics as a CSV attachment
// @Tags         prices
// @Produce      text/csv
// @Param        symbol  path      string  true   "Ticker symbol" example(SPY)
// @Param        range   query     string  false  "Time range (7d, 1mo, 6mo, 1y)" example(1mo)
// @Success      200     {string}  string             "CSV payload"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse  "Not Found"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/export/{symbol} [get]
func (h *Handler) Export(c *gin.Context) {
	symbol := service.NormalizeSymbol(c.Param("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbol is required", nil))
		return
	}

	rng, err := models.ParseTimeRange(c.Query("range"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid range", err))
		return
	}

	report, err := h.prices.GetPrices(c.Request.Context(), symbol, rng)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := writeCSV(&buf, report, time.Now().UTC()); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to build export", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%s_data.csv", symbol, rng))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// writeCSV renders a report as CSV: a header block identifying the
// export, the rounded metrics, then one row per bar.
func writeCSV(w io.Writer, report *models.PriceReport, exportedAt time.Time) error {
	cw := csv.NewWriter(w)
	m := dto.NewMetricsResponse(report.Metrics)

	preamble := [][]string{
		{"Symbol", report.Symbol},
		{"Range", string(report.Range)},
		{"Export Date", exportedAt.Format("2006-01-02 15:04:05")},
		nil,
		{"Metrics"},
		{"Current Price", "$" + num(m.CurrentPrice)},
		{"Price Change", fmt.Sprintf("$%s (%s%%)", num(m.PriceChange), num(m.PriceChangePct))},
		{"Total Return", num(m.Returns) + "%"},
		{"Volatility", num(m.Volatility) + "%"},
		{"Max Drawdown", num(m.MaxDrawdown) + "%"},
		nil,
		{"Date", "Open", "High", "Low", "Close", "Volume"},
	}
	for _, row := range preamble {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	for _, b := range report.Bars {
		row := []string{
			b.Date.Format("2006-01-02"),
			num(b.Open),
			num(b.High),
			num(b.Low),
			num(b.Close),
			strconv.FormatInt(b.Volume, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// num formats a float without exponent notation or trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
