package consumer

import (
	"context"
	"encoding/json"

	"github.com/Picancianmartin/UniformesCoachSite/internal/cart"

	"go.uber.org/zap"
)

type deleteCartPayload struct {
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
}

func handleDeleteCart(ctx context.Context, payload []byte, cartService cart.Service, logger *zap.Logger) error {
	var data deleteCartPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return err
	}

	if err := cartService.Clear(ctx, data.UserID); err != nil {
		return err
	}

	logger.Info("cart cleared after checkout",
		zap.String("user_id", data.UserID),
		zap.String("order_id", data.OrderID),
	)
	return nil
}
