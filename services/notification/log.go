package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier only logs notices. It stands in when FCM is not configured.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(_ context.Context, receiverID, senderID, title, message string) error {
	n.Logger.Info("Notification (not delivered)",
		zap.String("receiverId", receiverID),
		zap.String("senderId", senderID),
		zap.String("title", title),
		zap.String("message", message))
	return nil
}
