package dto

import (
	"encoding/json"
	"fmt"
	"villa/infras/mpesa"
	"villa/internal/domains/payment/model"
)

const (
	mpesaItemReceipt = "MpesaReceiptNumber"
	mpesaItemAmount  = "Amount"
)

// MobileMoneyCallbackRequest is the body Daraja posts to the STK push callback URL.
type MobileMoneyCallbackRequest struct {
	Body struct {
		StkCallback *StkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type StkCallback struct {
	MerchantRequestID string     `json:"MerchantRequestID"`
	CheckoutRequestID string     `json:"CheckoutRequestID"`
	ResultCode        mpesa.Code `json:"ResultCode"`
	ResultDesc        string     `json:"ResultDesc"`
	CallbackMetadata  *struct {
		Item []CallbackItem `json:"Item"`
	} `json:"CallbackMetadata,omitempty"`
}

type CallbackItem struct {
	Name  string          `json:"Name"`
	Value json.RawMessage `json:"Value,omitempty"`
}

// ToOutcome converts the callback. ok is false when the body carries no stkCallback.
func (r MobileMoneyCallbackRequest) ToOutcome() (outcome model.Outcome, ok bool) {
	cb := r.Body.StkCallback
	if cb == nil {
		return outcome, false
	}

	outcome = model.Outcome{
		Method:    model.MethodMpesa,
		Reference: cb.CheckoutRequestID,
		Paid:      cb.ResultCode.OK(),
		Message:   cb.ResultDesc,
	}

	if cb.CallbackMetadata == nil {
		return outcome, true
	}

	for _, item := range cb.CallbackMetadata.Item {
		switch item.Name {
		case mpesaItemReceipt:
			outcome.Receipt = rawString(item.Value)
		case mpesaItemAmount:
			var amount float64
			if err := json.Unmarshal(item.Value, &amount); err == nil {
				outcome.Amount = amount
			}
		}
	}

	return outcome, true
}

// MobileMoneyCallbackResponse acknowledges a callback. Daraja only needs a
// well-formed answer, so it is always ResultCode 0.
type MobileMoneyCallbackResponse struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

func NewMobileMoneyAck() MobileMoneyCallbackResponse {
	return MobileMoneyCallbackResponse{ResultCode: 0, ResultDesc: "Success"}
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return fmt.Sprint(string(raw))
}
