package commons

import (
	"encoding/json"
	"testing"
)

type balanceView struct {
	Balance string `json:"balance"`
}

func TestErrorResponseOmitsData(t *testing.T) {
	raw, err := json.Marshal(ErrorResponse[balanceView]("validation failed", "amount must be greater than zero"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	want := `{"success":false,"message":"validation failed","errors":["amount must be greater than zero"]}`
	if string(raw) != want {
		t.Fatalf("expected %s, got %s", want, raw)
	}
}

func TestSuccessResponseCarriesData(t *testing.T) {
	resp := SuccessResponse("account fetched", balanceView{Balance: "10.00"})
	if !resp.Success || resp.Data == nil || resp.Data.Balance != "10.00" {
		t.Fatalf("expected success envelope with data, got %+v", resp)
	}
	if resp.Errors != nil {
		t.Fatalf("expected no errors, got %v", resp.Errors)
	}
}
