package request

// GiveRequest is the request body for transferring candy
type GiveRequest struct {
	Target string `json:"target"`
	Amount int64  `json:"amount"`
}

// ItemRequest is the request body for purchasing or using an item
type ItemRequest struct {
	Item string `json:"item"`
}

// TargetRequest is the request body for commands aimed at another player or clan
type TargetRequest struct {
	Target string `json:"target"`
}

// ChoiceRequest is the request body for answering a steal or duel
type ChoiceRequest struct {
	Choice string `json:"choice"`
}

// CreateClanRequest is the request body for creating a clan
type CreateClanRequest struct {
	Name string `json:"name"`
}

// RedeemPromoRequest is the request body for redeeming a promo code
type RedeemPromoRequest struct {
	Code string `json:"code"`
}

// AdjustRequest is the request body for admin credit and debit
type AdjustRequest struct {
	Target string `json:"target"`
	Amount int64  `json:"amount"`
}

// CreatePromoRequest is the request body for creating a promo code
type CreatePromoRequest struct {
	Code    string `json:"code"`
	Reward  int64  `json:"reward"`
	MaxUses int    `json:"max_uses,omitempty"`
}

// ResetCooldownRequest is the request body for clearing a cooldown
type ResetCooldownRequest struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
}
