package notification

import (
	"context"
	"errors"
	"fmt"

	directoryRepo "slotwise/database/repository/directory"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Notifier delivers a short message to an account. SenderID may be empty for
// system notices.
type Notifier interface {
	Notify(ctx context.Context, receiverID, senderID, title, message string) error
}

// MessageSender is the slice of the FCM client the notifier needs.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// ErrNoDeviceToken is returned when the receiver never registered a device.
var ErrNoDeviceToken = errors.New("receiver has no FCM token")

// FCMNotifier looks up the receiver's device token and pushes through FCM.
type FCMNotifier struct {
	directory directoryRepo.Directory
	client    MessageSender
	logger    *zap.Logger
}

func NewFCMNotifier(directory directoryRepo.Directory, client MessageSender, logger *zap.Logger) (*FCMNotifier, error) {
	if directory == nil || client == nil {
		return nil, fmt.Errorf("notification service initialization error: directory or FCM client is nil")
	}
	return &FCMNotifier{directory: directory, client: client, logger: logger}, nil
}

func (n *FCMNotifier) Notify(ctx context.Context, receiverID, senderID, title, message string) error {
	account, err := n.directory.GetAccount(ctx, receiverID)
	if err != nil {
		return fmt.Errorf("Notify: could not find account %s: %w", receiverID, err)
	}
	if account.FCMToken == "" {
		return fmt.Errorf("Notify: account %s: %w", receiverID, ErrNoDeviceToken)
	}

	data := map[string]string{"role": account.Role}
	if senderID != "" {
		data["senderId"] = senderID
	}

	msg := &messaging.Message{
		Token: account.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  message,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := n.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("Notify: failed to send FCM message: %w", err)
	}
	n.logger.Debug("Notification sent", zap.String("receiverId", receiverID), zap.String("messageId", id))
	return nil
}
