package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"coinboard/internal/domain"
	"coinboard/internal/infra"
	"coinboard/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const skeletonRows = 10

// IconStore serves locally stored coin thumbnails
type IconStore interface {
	HasIcon(id string) bool
	IconPath(id string) string
	DownloadIcon(ctx context.Context, id, imageURL string) (string, error)
}

// Handler serves the dashboard pages and the JSON API
type Handler struct {
	list       *view.CoinListView
	source     domain.MarketDataSource
	icons      IconStore
	metrics    *infra.Metrics
	defaultTab view.Section
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHandler creates a Handler. icons and metrics may be nil.
func NewHandler(list *view.CoinListView, source domain.MarketDataSource, icons IconStore, metrics *infra.Metrics, defaultTab string) *Handler {
	if metrics == nil {
		metrics = &infra.Metrics{}
	}
	return &Handler{
		list:       list,
		source:     source,
		icons:      icons,
		metrics:    metrics,
		defaultTab: view.ParseSection(defaultTab, view.SectionDescription),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger: slog.Default().With("module", "web"),
	}
}

// ListPage renders the coin table, filtered by ?q=
func (h *Handler) ListPage(c *gin.Context) {
	snap := h.list.Snapshot(strings.TrimSpace(c.Query("q")))
	c.HTML(http.StatusOK, "list.html", gin.H{
		"Title":    "Cryptocurrency Market",
		"Snapshot": snap,
		"Skeleton": make([]struct{}, skeletonRows),
	})
}

// DetailPage renders a coin page; ?tab= selects the section
func (h *Handler) DetailPage(c *gin.Context) {
	snap := h.loadDetail(c.Request.Context(), c.Param("id"))

	status := http.StatusOK
	title := "Coin not found"
	if snap.State == view.StateReady && snap.Coin != nil {
		title = snap.Coin.Name + " (" + strings.ToUpper(snap.Coin.Symbol) + ")"
	} else {
		status = http.StatusNotFound
	}

	c.HTML(status, "detail.html", gin.H{
		"Title":    title,
		"Snapshot": snap,
		"Sections": view.Sections,
		"Active":   view.ParseSection(c.Query("tab"), h.defaultTab),
	})
}

// loadDetail runs one navigation on a fresh detail view and unmounts it
func (h *Handler) loadDetail(ctx context.Context, id string) view.DetailSnapshot {
	v := view.NewCoinDetailView(h.source)
	defer v.Close()
	return v.Navigate(ctx, id)
}

// ListJSON returns the filtered list snapshot
func (h *Handler) ListJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.list.Snapshot(strings.TrimSpace(c.Query("q"))))
}

// DetailJSON returns one coin, or 404 with the not-found message
func (h *Handler) DetailJSON(c *gin.Context) {
	snap := h.loadDetail(c.Request.Context(), c.Param("id"))
	if snap.State != view.StateReady || snap.Coin == nil {
		c.JSON(http.StatusNotFound, gin.H{"id": snap.ID, "error": snap.Error})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Refresh triggers an immediate list fetch
func (h *Handler) Refresh(c *gin.Context) {
	if err := h.list.Refresh(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "refreshing"})
}

// Icon serves the thumbnail for a coin, downloading it on first use.
// Falls back to the remote image when no thumbnail can be produced.
func (h *Handler) Icon(c *gin.Context) {
	id := c.Param("id")
	if !domain.ValidCoinID(id) {
		c.Status(http.StatusNotFound)
		return
	}

	coin, known := h.list.Coin(id)
	if h.icons != nil {
		if h.icons.HasIcon(id) {
			c.File(h.icons.IconPath(id))
			return
		}
		if known {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
			defer cancel()
			path, err := h.icons.DownloadIcon(ctx, id, coin.Image)
			if err == nil {
				c.File(path)
				return
			}
			h.logger.Warn("Failed to download icon", slog.String("id", id), slog.Any("error", err))
		}
	}

	if known && coin.Image != "" {
		c.Redirect(http.StatusFound, coin.Image)
		return
	}
	c.Status(http.StatusNotFound)
}

// Health reports liveness and whether the list is polling
func (h *Handler) Health(c *gin.Context) {
	snap := h.list.Snapshot("")
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"polling":    h.list.Mounted(),
		"list_state": snap.State,
		"coins":      snap.Total,
	})
}

// Metrics returns the metrics snapshot
func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}
