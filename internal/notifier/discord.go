package notifier

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/mayaandrob/invite-api/internal/config"
	"github.com/mayaandrob/invite-api/internal/models"
)

// DiscordNotifier posts new RSVPs to the hosts' Discord channel.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(cfg *config.Config) (*DiscordNotifier, error) {
	if cfg.DiscordBotToken == "" || cfg.DiscordNotificationsChannelID == "" {
		return nil, fmt.Errorf("discord notifier is not configured: set DISCORD_BOT_TOKEN and DISCORD_NOTIFICATIONS_CHANNEL_ID")
	}
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &DiscordNotifier{
		session:   session,
		channelID: cfg.DiscordNotificationsChannelID,
	}, nil
}

func (n *DiscordNotifier) NotifyRSVP(ctx context.Context, fields models.RSVPFields) error {
	var status string
	switch fields.Attending {
	case models.AttendanceYes:
		status = "is coming 🎉"
	case models.AttendanceNo:
		status = "can't make it 😢"
	default:
		status = "might come 🤔"
	}

	message := fmt.Sprintf("💌 **New RSVP**\n**Guest:** %s\n**Status:** %s\n**Additional guests:** %d (%s)\n**Dietary notes:** %s",
		fields.GuestName,
		status,
		fields.NumberOfGuests,
		orNone(fields.AdditionalGuests),
		orNone(fields.DietaryRestrictions),
	)

	if _, err := n.session.ChannelMessageSend(n.channelID, message); err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}
	return nil
}
