package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("GET /swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("GET /swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Money Transfer Service API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Money Transfer Service API",
    "version": "1.0.0"
  },
  "security": [{"BasicAuth": []}],
  "paths": {
    "/api/transfers": {
      "post": {
        "summary": "Transfer funds between two accounts",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TransferRequest"}}}
        },
        "responses": {
          "201": {"description": "Transfer completed", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TransactionEnvelope"}}}},
          "400": {"description": "Invalid amount, currency mismatch or malformed request"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Source or destination account not found"},
          "500": {"description": "Store failure"}
        }
      },
      "get": {
        "summary": "List transactions",
        "parameters": [
          {"name": "accountId", "in": "query", "required": false, "schema": {"type": "integer", "format": "int64"}}
        ],
        "responses": {
          "200": {"description": "Transactions ordered by id"},
          "400": {"description": "Invalid accountId"}
        }
      }
    },
    "/api/transfers/{id}": {
      "get": {
        "summary": "Get transaction",
        "parameters": [{"$ref": "#/components/parameters/ID"}],
        "responses": {
          "200": {"description": "Transaction", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TransactionEnvelope"}}}},
          "404": {"description": "Transaction not found"}
        }
      }
    },
    "/api/accounts": {
      "get": {
        "summary": "List accounts",
        "parameters": [
          {"name": "currency", "in": "query", "schema": {"type": "string"}},
          {"name": "minBalance", "in": "query", "schema": {"type": "string"}},
          {"name": "ownerName", "in": "query", "schema": {"type": "string"}},
          {"name": "negative", "in": "query", "schema": {"type": "boolean"}}
        ],
        "responses": {"200": {"description": "Accounts ordered by id"}}
      },
      "post": {
        "summary": "Open account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["ownerName", "currency"],
                "properties": {
                  "ownerName": {"type": "string"},
                  "currency": {"type": "string", "minLength": 3, "maxLength": 3},
                  "initialBalance": {"type": "string", "example": "100.00"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AccountEnvelope"}}}},
          "400": {"description": "Validation error"}
        }
      }
    },
    "/api/accounts/{id}": {
      "get": {
        "summary": "Get account",
        "parameters": [{"$ref": "#/components/parameters/ID"}],
        "responses": {
          "200": {"description": "Account", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AccountEnvelope"}}}},
          "404": {"description": "Account not found"}
        }
      },
      "put": {
        "summary": "Update account owner name",
        "parameters": [{"$ref": "#/components/parameters/ID"}],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"type": "object", "required": ["ownerName"], "properties": {"ownerName": {"type": "string"}}}}}
        },
        "responses": {
          "200": {"description": "Updated"},
          "404": {"description": "Account not found"}
        }
      }
    },
    "/api/accounts/{id}/deposits": {
      "post": {
        "summary": "Credit an account from outside the ledger",
        "parameters": [{"$ref": "#/components/parameters/ID"}],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"type": "object", "required": ["amount"], "properties": {"amount": {"type": "string", "example": "10.00"}}}}}
        },
        "responses": {
          "200": {"description": "Deposited"},
          "400": {"description": "Amount must be positive"},
          "404": {"description": "Account not found"}
        }
      }
    },
    "/health": {
      "get": {"summary": "Liveness", "security": [], "responses": {"200": {"description": "UP"}}}
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {"type": "http", "scheme": "basic"}
    },
    "parameters": {
      "ID": {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}
    },
    "schemas": {
      "TransferRequest": {
        "type": "object",
        "required": ["fromAccountId", "toAccountId", "amount"],
        "properties": {
          "fromAccountId": {"type": "integer", "format": "int64"},
          "toAccountId": {"type": "integer", "format": "int64"},
          "amount": {"type": "string", "example": "25.00"}
        }
      },
      "Transaction": {
        "type": "object",
        "properties": {
          "id": {"type": "integer", "format": "int64"},
          "fromAccountId": {"type": "integer", "format": "int64"},
          "toAccountId": {"type": "integer", "format": "int64"},
          "amount": {"type": "string"},
          "currency": {"type": "string"},
          "status": {"type": "string", "enum": ["COMPLETED", "PENDING", "FAILED"]},
          "createdAt": {"type": "string", "format": "date-time"}
        }
      },
      "Account": {
        "type": "object",
        "properties": {
          "id": {"type": "integer", "format": "int64"},
          "ownerName": {"type": "string"},
          "balance": {"type": "string"},
          "currency": {"type": "string"},
          "createdAt": {"type": "string", "format": "date-time"},
          "updatedAt": {"type": "string", "format": "date-time"}
        }
      },
      "TransactionEnvelope": {
        "type": "object",
        "properties": {
          "success": {"type": "boolean"},
          "message": {"type": "string"},
          "data": {"$ref": "#/components/schemas/Transaction"},
          "errors": {"type": "array", "items": {"type": "string"}}
        }
      },
      "AccountEnvelope": {
        "type": "object",
        "properties": {
          "success": {"type": "boolean"},
          "message": {"type": "string"},
          "data": {"$ref": "#/components/schemas/Account"},
          "errors": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`
