package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketbriefs/marketbriefs/internal/domain/dto"
	"github.com/marketbriefs/marketbriefs/internal/domain/models"
	"github.com/marketbriefs/marketbriefs/internal/service"
)

// Handler provides HTTP handlers for the price history endpoints.
//
// Responsibilities:
//   - Validate incoming query parameters and request bodies
//   - Delegate to the price and summary services
//   - Translate service results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	prices    service.PriceService
	summaries service.SummaryService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - prices (service.PriceService): Price acquisition and metrics pipeline.
//   - summaries (service.SummaryService): Narrative brief composition.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(prices service.PriceService, summaries service.SummaryService) *Handler {
	return &Handler{prices: prices, summaries: summaries}
}

// GetPrices handles GET /api/v1/prices requests.
//
// Query Parameters:
//   - symbol (string, required): Ticker symbol (e.g., "SPY").
//   - range (string, optional): One of 7d, 1mo, 6mo, 1y. Defaults to 1mo.
//
// Responses:
//   - 200 OK: Returns PricesResponse with OHLCV rows and metrics.
//   - 400 Bad Request: Missing symbol or unsupported range.
//   - 404 Not Found: No bars stored inside the requested window.
//   - 500 Internal Server Error: Storage failure.
//
// GetPrices godoc
// @Summary      Get price history
// @Description  Returns daily OHLCV bars and computed metrics for a symbol over a time range
// @Tags         prices
// @Accept       json
// @Produce      json
// @Param        symbol  query     string  true   "Ticker symbol" example(SPY)
// @Param        range   query     string  false  "Time range (7d, 1mo, 6mo, 1y)" example(1mo)
// @Success      200     {object}  dto.PricesResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse   "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse   "Not Found"
// @Failure      500     {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/prices [get]
func (h *Handler) GetPrices(c *gin.Context) {
	symbol := service.NormalizeSymbol(c.Query("symbol"))
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

	c.JSON(http.StatusOK, dto.NewPricesResponse(report))
}

// Summarize handles POST /api/v1/summarize requests.
//
// Request Body:
//   - symbol (string, required): Ticker symbol.
//   - range (string, optional): One of 7d, 1mo, 6mo, 1y. Defaults to 1mo.
//
// Responses:
//   - 200 OK: Returns SummaryResponse with the narrative brief.
//   - 400 Bad Request: Malformed body, missing symbol or unsupported range.
//   - 404 Not Found: No bars stored inside the requested window.
//   - 500 Internal Server Error: Storage failure.
//
// Summarize godoc
// @Summary      Summarize a symbol
// @Description  Composes a narrative brief over the symbol's metrics, reusing a brief stored earlier the same day
// @Tags         summaries
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SummarizeRequest  true  "Symbol and range"
// @Success      200      {object}  dto.SummaryResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse    "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse    "Not Found"
// @Failure      500      {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/summarize [post]
func (h *Handler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}

	symbol := service.NormalizeSymbol(req.Symbol)
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbol is required", nil))
		return
	}

	rng, err := models.ParseTimeRange(req.Range)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid range", err))
		return
	}

	result, err := h.summaries.Summarize(c.Request.Context(), symbol, rng)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{
		Symbol:  result.Symbol,
		Summary: result.Text,
		Cached:  result.Cached,
	})
}

// Search handles GET /api/v1/search/:query requests.
//
// Path Parameters:
//   - query (string, required): Partial symbol or company name.
//
// Responses:
//   - 200 OK: Returns SearchResponse, possibly with an empty result list.
//
// Search godoc
// @Summary      Search ticker symbols
// @Description  Matches a partial symbol or company name against the known ticker catalog
// @Tags         symbols
// @Produce      json
// @Param        query  path      string  true  "Partial symbol or name" example(APP)
// @Success      200    {object}  dto.SearchResponse  "Success"
// @Router       /api/v1/search/{query} [get]
func (h *Handler) Search(c *gin.Context) {
	matches := service.SearchSymbols(c.Param("query"))

	results := make([]dto.SymbolMatch, 0, len(matches))
	for _, m := range matches {
		results = append(results, dto.SymbolMatch{Symbol: m.Symbol, Name: m.Name})
	}

	c.JSON(http.StatusOK, dto.SearchResponse{Results: results})
}

// respondError maps service errors onto HTTP status codes: a missing
// window is 404, everything else is a 500.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNoData) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no data found", err))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch price data", err))
}
