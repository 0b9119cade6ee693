package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"money"`
	Sender   string          `json:"sender_number" validate:"notblank,max=50"`
	Decision string          `json:"status" validate:"required,request_status"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  sampleRequest
		want map[string]string
	}{
		{
			name: "valid",
			req:  sampleRequest{Amount: decimal.RequireFromString("500.00"), Sender: "01700000000", Decision: "approved"},
			want: nil,
		},
		{
			name: "zero amount",
			req:  sampleRequest{Sender: "01700000000", Decision: "rejected"},
			want: map[string]string{"amount": "Must be a positive amount with at most 2 decimal places"},
		},
		{
			name: "sub-cent amount and blank sender",
			req:  sampleRequest{Amount: decimal.RequireFromString("10.005"), Sender: "   ", Decision: "approved"},
			want: map[string]string{
				"amount":        "Must be a positive amount with at most 2 decimal places",
				"sender_number": "This field is required",
			},
		},
		{
			name: "unknown decision",
			req:  sampleRequest{Amount: decimal.NewFromInt(20), Sender: "x", Decision: "completed"},
			want: map[string]string{"status": "Invalid status. Must be: approved or rejected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.req))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, ValidateVar("completed", "order_status"))
	assert.Error(t, ValidateVar("approved", "order_status"))
}
