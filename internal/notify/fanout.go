package notify

import (
	"context"
	"time"

	"github.com/emberloop/backend/internal/metrics"
	"github.com/emberloop/backend/internal/models"
	"github.com/emberloop/backend/internal/repositories"
	"go.uber.org/zap"
)

const deliverTimeout = 5 * time.Second

// Notifier writes notification rows as a fire-and-forget side effect of
// toggles. A failed write is logged and dropped; it must never fail or delay
// the mutation that triggered it, so delivery runs on its own goroutine with
// its own context.
type Notifier struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	log           *zap.Logger
}

// NewNotifier creates a new Notifier
func NewNotifier(notifications repositories.NotificationRepository, users repositories.UserRepository, log *zap.Logger) *Notifier {
	return &Notifier{notifications: notifications, users: users, log: log}
}

// FollowerGained notifies a user that someone started following them. Every
// transition to "on" is a legitimate event, including a re-follow after an
// unfollow, so there is no suppression of repeated cycles.
func (n *Notifier) FollowerGained(actorID, recipientID uint) {
	go n.deliver(&models.Notification{
		Type:        "follow",
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetType:  "user",
	})
}

// ReactionReceived notifies a content author about a reaction on their post
func (n *Notifier) ReactionReceived(actorID, recipientID uint, subjectID, reactionType string) {
	go n.deliver(&models.Notification{
		Type:        "reaction",
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetID:    subjectID,
		TargetType:  "post",
	})
}

func (n *Notifier) deliver(notification *models.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	notification.Message = n.message(notification)

	if err := n.notifications.CreateNotification(ctx, notification); err != nil {
		metrics.NotificationsDropped.Inc()
		n.log.Warn("dropping notification",
			zap.String("type", notification.Type),
			zap.Uint("recipient_id", notification.RecipientID),
			zap.Error(err))
	}
}

// message renders the display text. A missing actor degrades to a generic
// message rather than dropping the notification.
func (n *Notifier) message(notification *models.Notification) string {
	name := "Someone"
	if actor, err := n.users.GetUserByID(notification.ActorID); err == nil {
		name = actor.Name
	}

	switch notification.Type {
	case "follow":
		return name + " started following you"
	case "reaction":
		return name + " reacted to your post"
	default:
		return name + " sent you a notification"
	}
}
