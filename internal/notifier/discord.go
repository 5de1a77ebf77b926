package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/campus-buzz/campus-events-api/internal/models"
)

// Notifier announces new registrations to a campus channel. Best effort: the
// registration is already committed when it runs.
type Notifier interface {
	NotifyRegistration(user models.User, event models.Event, registration models.Registration) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyRegistration(user models.User, event models.Event, registration models.Registration) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	message := fmt.Sprintf("🎟️ **New Registration**\n**Event:** %s (%s)\n**Attendee:** %s\n**Seats:** %d\n**Total:** $%.2f",
		event.Title,
		event.Date,
		user.FullName(),
		registration.Quantity,
		registration.TotalAmount,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	return err
}
