package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/http/models"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
	"github.com/api-sage/money-transfer-service/src/internal/usecase/service_interfaces"
)

type TransferController struct {
	transfers    service_interfaces.TransferService
	transactions service_interfaces.TransactionService
}

func NewTransferController(transfers service_interfaces.TransferService, transactions service_interfaces.TransactionService) *TransferController {
	return &TransferController{transfers: transfers, transactions: transactions}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"POST /api/transfers":     c.transfer,
		"GET /api/transfers":      c.listTransactions,
		"GET /api/transfers/{id}": c.getTransaction,
	}
	for pattern, handler := range routes {
		var h http.Handler = handler
		if authMiddleware != nil {
			h = authMiddleware(h)
		}
		mux.Handle(pattern, h)
	}
}

func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.TransferRequest
	if !decodeBody[models.TransferRequest, models.TransactionResponse](w, r, start, &req) {
		return
	}

	response, err := c.transfers.TransferFunds(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *TransferController) getTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := pathID[models.TransactionResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.transactions.GetTransaction(r.Context(), id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *TransferController) listTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var accountID *int64
	if raw := strings.TrimSpace(r.URL.Query().Get("accountId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response := commons.ErrorResponse[[]models.TransactionResponse]("validation failed", "accountId must be a positive integer")
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, http.StatusBadRequest, response, start)
			return
		}
		accountID = &id
	}

	response, err := c.transactions.ListTransactions(r.Context(), accountID)
	respond(w, r, start, http.StatusOK, response, err)
}
