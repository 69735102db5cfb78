package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/roteirods-byte/autotrader/internal/domain/models"
	domrepo "github.com/roteirods-byte/autotrader/internal/domain/repository"
	"github.com/roteirods-byte/autotrader/internal/repository"
	"github.com/roteirods-byte/autotrader/internal/usecase"
	xhttp "github.com/roteirods-byte/autotrader/pkg/http"
	xlogger "github.com/roteirods-byte/autotrader/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AutotraderEchoHandler wires the panel API onto Echo. The /api/entrada,
// /health and GET /api/moedas payloads keep their historical raw shapes so
// the deployed dashboard bundle keeps working; newer endpoints use the
// standard response envelope.
type AutotraderEchoHandler struct {
	logger    *xlogger.Logger
	entrada   domrepo.SnapshotReader
	feed      domrepo.SnapshotProvider
	ledger    *usecase.Ledger
	coins     *usecase.CoinSet
	mail      *usecase.MailConfig
	manualOps *repository.ManualOpsFile
	staticDir string
}

func NewAutotraderEchoHandler(
	logger *xlogger.Logger,
	entrada domrepo.SnapshotReader,
	feed domrepo.SnapshotProvider,
	ledger *usecase.Ledger,
	coins *usecase.CoinSet,
	mail *usecase.MailConfig,
	manualOps *repository.ManualOpsFile,
	staticDir string,
) *AutotraderEchoHandler {
	return &AutotraderEchoHandler{
		logger:    logger,
		entrada:   entrada,
		feed:      feed,
		ledger:    ledger,
		coins:     coins,
		mail:      mail,
		manualOps: manualOps,
		staticDir: staticDir,
	}
}

func (h *AutotraderEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/entrada", h.Entrada) // pre-dashboard route, kept for curl users

	g := e.Group("/api")
	g.GET("/entrada", h.Entrada)
	g.GET("/feed", h.Feed)
	g.GET("/saida", h.ListPositions)
	g.POST("/saida", h.AddPosition)
	g.DELETE("/saida/:id", h.RemovePosition)
	g.POST("/saida/manual", h.AppendManualOp)
	g.GET("/moedas", h.ListCoins)
	g.POST("/moedas", h.AddCoins)
	g.DELETE("/moedas", h.RemoveCoins)
	g.GET("/email", h.GetMailConfig)
	g.POST("/email", h.SaveMailConfig)

	e.GET("/*", h.Static)
}

// Health mirrors the historical health-check payload.
func (h *AutotraderEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:            "ok",
		EntradaJSONExists: h.entrada.Exists(),
		EntradaJSONPath:   h.entrada.Path(),
	})
}

// Entrada republishes the worker's signal file as {swing, posicional}.
func (h *AutotraderEchoHandler) Entrada(c echo.Context) error {
	snap, err := h.entrada.Read()
	if err != nil {
		h.logger.Error("entrada read error", xlogger.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"erro":    "nao foi possivel ler o arquivo de entrada",
			"arquivo": h.entrada.Path(),
		})
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.JSON(http.StatusOK, snap)
}

// Feed returns the polled snapshot plus its staleness flag.
func (h *AutotraderEchoHandler) Feed(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.FeedResponse{
		Snapshot: h.feed.Snapshot(),
		Status:   h.feed.Status(),
	})
}

func (h *AutotraderEchoHandler) ListPositions(c echo.Context) error {
	views := h.ledger.Positions(c.Request().Context())
	return xhttp.ListResponse(c, views, int64(len(views)))
}

func (h *AutotraderEchoHandler) AddPosition(c echo.Context) error {
	req := &models.AddPositionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	op, err := h.ledger.Add(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrSaveFailed) {
			// Position exists for this session even though the store write
			// failed.
			return xhttp.SuccessResponse(c, map[string]interface{}{
				"op":      op,
				"warning": "nao foi possivel salvar as operacoes",
			})
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, op)
}

func (h *AutotraderEchoHandler) RemovePosition(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("id must be an integer"))
	}

	if err := h.ledger.Remove(c.Request().Context(), id); err != nil {
		if errors.Is(err, usecase.ErrSaveFailed) {
			return xhttp.SuccessResponse(c, map[string]interface{}{
				"warning": "nao foi possivel salvar as operacoes",
			})
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.NoContentResponse(c)
}

// AppendManualOp appends a manually supplied operation object to the
// server-side JSON array file consumed by the automation. The automation
// scripts branch on the HTTP status code, so this endpoint answers with raw
// transport codes instead of the response envelope.
func (h *AutotraderEchoHandler) AppendManualOp(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"erro": "nao foi possivel ler o corpo da requisicao",
		})
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"erro": "o corpo deve ser um objeto JSON",
		})
	}

	if err := h.manualOps.Append(json.RawMessage(trimmed)); err != nil {
		if errors.Is(err, repository.ErrCorruptOpsFile) {
			h.logger.Error("manual ops file corrupt", xlogger.Error(err))
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"erro": "arquivo de operacoes invalido",
			})
		}
		h.logger.Error("manual op append error", xlogger.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"erro": "nao foi possivel gravar a operacao",
		})
	}
	return c.JSON(http.StatusCreated, map[string]bool{"ok": true})
}

// ListCoins keeps the raw {moedas:[...]} shape the panel parses.
func (h *AutotraderEchoHandler) ListCoins(c echo.Context) error {
	return c.JSON(http.StatusOK, models.CoinsResponse{
		Moedas: h.coins.List(c.Request().Context()),
	})
}

func (h *AutotraderEchoHandler) AddCoins(c echo.Context) error {
	req := &models.AddCoinsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	added, coins, err := h.coins.Add(c.Request().Context(), req.Ticker)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, models.AddCoinsResponse{Moedas: coins, Added: added})
}

func (h *AutotraderEchoHandler) RemoveCoins(c echo.Context) error {
	req := &models.RemoveCoinsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	coins, err := h.coins.RemoveSelected(c.Request().Context(), req.Tickers)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, models.CoinsResponse{Moedas: coins})
}

func (h *AutotraderEchoHandler) GetMailConfig(c echo.Context) error {
	cfg, ok := h.mail.Get(c.Request().Context())
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no mail configuration saved"))
	}
	return xhttp.SuccessResponse(c, cfg.Redacted())
}

func (h *AutotraderEchoHandler) SaveMailConfig(c echo.Context) error {
	req := &models.MailConfigRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	cfg := models.MailConfig{From: req.From, Password: req.Password, To: req.To}
	if err := h.mail.Save(c.Request().Context(), cfg); err != nil {
		return xhttp.SuccessResponse(c, map[string]string{
			"warning": "nao foi possivel salvar as configuracoes",
		})
	}
	return xhttp.SuccessResponse(c, cfg.Redacted())
}

// Static serves the pre-built dashboard bundle. Unknown paths fall back to
// the bundle's entry document, or to a plain-text line when no bundle is
// deployed.
func (h *AutotraderEchoHandler) Static(c echo.Context) error {
	if h.staticDir != "" {
		name := filepath.Clean("/" + c.Param("*"))
		path := filepath.Join(h.staticDir, name)
		if strings.HasPrefix(path, filepath.Clean(h.staticDir)) {
			if st, err := os.Stat(path); err == nil && !st.IsDir() {
				return c.File(path)
			}
		}
		index := filepath.Join(h.staticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			return c.File(index)
		}
	}
	return c.String(http.StatusOK, "AUTOTRADER backend ativo")
}
