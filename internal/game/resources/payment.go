package resources

import "fmt"

// Wallet exposes the pools a cost is paid from.
type Wallet interface {
	Pool(kind Kind) *Pool
}

// PaymentResult represents the result of a payment attempt.
type PaymentResult struct {
	Success bool
	Paid    Cost
	Reason  string
}

// CanPay checks whether the wallet covers the cost without changing it.
func CanPay(cost Cost, wallet Wallet) bool {
	return check(cost, wallet) == ""
}

// Pay deducts the cost from the wallet. Nothing is deducted when any pool
// falls short.
func Pay(cost Cost, wallet Wallet) PaymentResult {
	if reason := check(cost, wallet); reason != "" {
		return PaymentResult{Success: false, Reason: reason}
	}
	wallet.Pool(Stamina).Spend(cost.Stamina)
	wallet.Pool(Focus).Spend(cost.Focus)
	wallet.Pool(Health).Spend(cost.Health)
	return PaymentResult{Success: true, Paid: cost}
}

func check(cost Cost, wallet Wallet) string {
	if wallet == nil {
		return "no wallet"
	}
	required := []struct {
		kind   Kind
		amount int
	}{
		{Stamina, cost.Stamina},
		{Focus, cost.Focus},
		{Health, cost.Health},
	}
	for _, r := range required {
		if r.amount <= 0 {
			continue
		}
		pool := wallet.Pool(r.kind)
		if pool == nil || pool.Current < r.amount {
			return fmt.Sprintf("insufficient %s (need %d)", r.kind, r.amount)
		}
	}
	return ""
}
