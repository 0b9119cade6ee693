package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest is the body of POST /orders. Any client-side amount is ignored.
type PlaceOrderRequest struct {
	GameID    string `json:"game_id" validate:"required,uuid"`
	PackageID string `json:"package_id" validate:"required,uuid"`
	GameUID   string `json:"game_uid" validate:"notblank,max=100"`
}

func (r PlaceOrderRequest) Input() PlaceOrderInput {
	return PlaceOrderInput{
		GameID:    uuid.MustParse(r.GameID),
		PackageID: uuid.MustParse(r.PackageID),
		GameUID:   r.GameUID,
	}
}

// AddMoneyRequestBody is the body of POST /add-money-requests
type AddMoneyRequestBody struct {
	Amount        decimal.Decimal `json:"amount" validate:"money"`
	SenderNumber  string          `json:"sender_number" validate:"notblank,max=50"`
	TransactionID string          `json:"transaction_id" validate:"notblank,max=100"`
}

func (r AddMoneyRequestBody) Input() AddMoneyInput {
	return AddMoneyInput{
		Amount:        r.Amount,
		SenderNumber:  r.SenderNumber,
		TransactionID: r.TransactionID,
	}
}

// DecideOrderBody is the body of PATCH /admin/orders/{id}
type DecideOrderBody struct {
	Status string `json:"status" validate:"required,order_status"`
}

// DecideRequestBody is the body of PATCH /admin/add-money-requests/{id}
type DecideRequestBody struct {
	Status string `json:"status" validate:"required,request_status"`
}
