package dto_test

import (
	"encoding/json"
	"testing"
	"villa/internal/domains/payment/model"
	"villa/internal/domains/payment/model/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMobileMoneyCallbackRequest_ToOutcome(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
		want   model.Outcome
	}{
		{
			name: "successful payment",
			body: `{"Body":{"stkCallback":{"MerchantRequestID":"m-1","CheckoutRequestID":"ws_CO_1","ResultCode":0,"ResultDesc":"The service request is processed successfully.","CallbackMetadata":{"Item":[{"Name":"Amount","Value":26500},{"Name":"MpesaReceiptNumber","Value":"NLJ7RT61SV"},{"Name":"Balance"},{"Name":"PhoneNumber","Value":254712345678}]}}}}`,
			wantOK: true,
			want: model.Outcome{
				Method:    model.MethodMpesa,
				Reference: "ws_CO_1",
				Paid:      true,
				Receipt:   "NLJ7RT61SV",
				Amount:    26500,
				Message:   "The service request is processed successfully.",
			},
		},
		{
			name:   "cancelled by user",
			body:   `{"Body":{"stkCallback":{"MerchantRequestID":"m-2","CheckoutRequestID":"ws_CO_2","ResultCode":1032,"ResultDesc":"Request cancelled by user"}}}`,
			wantOK: true,
			want: model.Outcome{
				Method:    model.MethodMpesa,
				Reference: "ws_CO_2",
				Message:   "Request cancelled by user",
			},
		},
		{
			name: "no stkCallback",
			body: `{"Body":{}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.MobileMoneyCallbackRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			got, ok := req.ToOutcome()

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewMobileMoneyAck(t *testing.T) {
	raw, err := json.Marshal(dto.NewMobileMoneyAck())
	require.NoError(t, err)

	assert.JSONEq(t, `{"ResultCode":0,"ResultDesc":"Success"}`, string(raw))
}
