package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elcastillomagic/card-pricer/internal/config"
	"github.com/elcastillomagic/card-pricer/internal/models"
	"github.com/elcastillomagic/card-pricer/internal/services"
)

const quoteTimeout = 15 * time.Second

type QuoteHandler struct {
	cfg      *config.Config
	pipeline *services.Pipeline
	scryfall *services.ScryfallClient
}

func NewQuoteHandler(cfg *config.Config, pipeline *services.Pipeline, scryfall *services.ScryfallClient) *QuoteHandler {
	return &QuoteHandler{
		cfg:      cfg,
		pipeline: pipeline,
		scryfall: scryfall,
	}
}

type quoteRequest struct {
	Name      string `json:"name" binding:"required"`
	Set       string `json:"set"`
	Lang      string `json:"lang"`
	Condition string `json:"condition"`
	Foil      bool   `json:"is_foil"`

	// Optional foil-likelihood signal from the labelling tooling. When
	// present, the foil flag must be corroborated against the printing's
	// finishes before pricing.
	FoilConfidence *float64 `json:"foil_confidence"`
}

type quoteResponse struct {
	Priced  bool               `json:"priced"`
	Quote   *models.PriceQuote `json:"quote,omitempty"`
	Set     string             `json:"set,omitempty"`
	Display string             `json:"price_display,omitempty"`
}

// Quote prices one ad-hoc card through the same pipeline as the batch. A
// request without a set code resolves the printing by name first; an
// unpriceable card answers 200 with priced=false ("Consultar"), never an
// error.
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Condition == "" {
		req.Condition = "NM"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), quoteTimeout)
	defer cancel()

	row := models.InventoryRow{
		Name:      req.Name,
		SetCode:   req.Set,
		Language:  req.Lang,
		Condition: req.Condition,
		Foil:      req.Foil,
		Quantity:  1,
	}

	english := h.pipeline.ResolveName(req.Name, req.Lang)

	if row.SetCode == "" {
		// No edition hint: pick the best printing by name.
		printings, err := h.scryfall.SearchPrintings(ctx, english)
		if err != nil || len(printings) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
			return
		}
		best := services.SelectPrinting(printings, "", req.Lang)
		if best == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
			return
		}
		row.SetCode = best.Set
		if req.FoilConfidence != nil {
			row.Foil = services.RefineFoil(row.Foil, *req.FoilConfidence, h.cfg.FoilConfidence, best)
		}
	} else if req.FoilConfidence != nil && row.Foil {
		card, err := h.scryfall.NamedExact(ctx, english, row.SetCode)
		if err == nil {
			row.Foil = services.RefineFoil(true, *req.FoilConfidence, h.cfg.FoilConfidence, card)
		}
	}

	result := h.pipeline.PriceRow(ctx, row)
	if result.Quote == nil {
		c.JSON(http.StatusOK, quoteResponse{Priced: false, Set: row.SetCode, Display: "Consultar"})
		return
	}

	c.JSON(http.StatusOK, quoteResponse{Priced: true, Quote: result.Quote, Set: row.SetCode})
}
