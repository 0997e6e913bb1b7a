package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/imthegoodboy/veristamp/internal/domain"
)

// WalletHeader carries the submitter's wallet address. It is an explicit
// per-request credential; there is no ambient wallet session.
const WalletHeader = "X-Wallet-Address"

const walletContextKey = "wallet_address"

// Wallet extracts the submitter wallet address from the request header
// and stores it in the request context. Presence is enforced by the
// handlers that require it, not here.
func Wallet() fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := strings.TrimSpace(c.Get(WalletHeader))
		if wallet != "" {
			c.Locals(walletContextKey, wallet)
		}
		return c.Next()
	}
}

// GetWallet returns the submitter wallet address for the request
func GetWallet(c *fiber.Ctx) (string, error) {
	wallet, ok := c.Locals(walletContextKey).(string)
	if !ok || wallet == "" {
		return "", domain.ErrMissingWallet
	}
	return wallet, nil
}
