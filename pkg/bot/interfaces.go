package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Responder is the part of discordgo.Session used to answer interactions.
// *discordgo.Session satisfies it directly.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Responder = (*discordgo.Session)(nil)
