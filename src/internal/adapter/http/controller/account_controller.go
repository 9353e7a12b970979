package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/http/models"
	"github.com/api-sage/money-transfer-service/src/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"GET /api/accounts":                c.listAccounts,
		"POST /api/accounts":               c.createAccount,
		"GET /api/accounts/{id}":           c.getAccount,
		"PUT /api/accounts/{id}":           c.updateAccount,
		"POST /api/accounts/{id}/deposits": c.depositFunds,
	}
	for pattern, handler := range routes {
		var h http.Handler = handler
		if authMiddleware != nil {
			h = authMiddleware(h)
		}
		mux.Handle(pattern, h)
	}
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.CreateAccountRequest
	if !decodeBody[models.CreateAccountRequest, models.AccountResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.CreateAccount(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := pathID[models.AccountResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.GetAccount(r.Context(), id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	q := r.URL.Query()
	query := models.ListAccountsQuery{
		Currency:     q.Get("currency"),
		MinBalance:   q.Get("minBalance"),
		OwnerName:    q.Get("ownerName"),
		NegativeOnly: strings.EqualFold(strings.TrimSpace(q.Get("negative")), "true"),
	}

	response, err := c.service.ListAccounts(r.Context(), query)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) updateAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := pathID[models.AccountResponse](w, r, start)
	if !ok {
		return
	}

	var req models.UpdateAccountRequest
	if !decodeBody[models.UpdateAccountRequest, models.AccountResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.UpdateAccount(r.Context(), id, req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) depositFunds(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := pathID[models.AccountResponse](w, r, start)
	if !ok {
		return
	}

	var req models.DepositRequest
	if !decodeBody[models.DepositRequest, models.AccountResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.DepositFunds(r.Context(), id, req)
	respond(w, r, start, http.StatusOK, response, err)
}
