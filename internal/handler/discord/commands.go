package discord

import "github.com/bwmarrin/discordgo"

// Command names.
const (
	cmdFlipStats      = "flipstats"
	cmdMacroCheck     = "macrocheck"
	cmdAuctions       = "auctions"
	cmdWebhookDeleter = "webhookdeleter"
	cmdHelp           = "help"
	cmdPing           = "ping"
	cmdMemberCount    = "membercount"
	cmdServerCount    = "servercount"
)

// moreInfoID is the custom id of the button under a macro check.
const moreInfoID = "flipcheck:macrocheck:more_info"

func playerOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "player",
		Description: "Minecraft username",
		Required:    true,
		MaxLength:   16,
	}
}

// Commands is the slash command set registered on startup.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        cmdFlipStats,
			Description: "Sends information of a flipper!",
			Options: []*discordgo.ApplicationCommandOption{
				playerOption(),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "days",
					Description: "Lookback window in days (1-7, default 7)",
				},
			},
		},
		{
			Name:        cmdMacroCheck,
			Description: "Check if a player is macroing flips.",
			Options:     []*discordgo.ApplicationCommandOption{playerOption()},
		},
		{
			Name:        cmdAuctions,
			Description: "Get player's auction data",
			Options:     []*discordgo.ApplicationCommandOption{playerOption()},
		},
		{
			Name:        cmdWebhookDeleter,
			Description: "Deletes a webhook. (This is an Advanced Command!)",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "webhook_url",
				Description: "Discord webhook URL",
				Required:    true,
			}},
		},
		{Name: cmdHelp, Description: "Display information about available commands and credits."},
		{Name: cmdPing, Description: "Ping the server and returns latency."},
		{Name: cmdMemberCount, Description: "Membercount of the server"},
		{Name: cmdServerCount, Description: "Show the number of servers the bot is in and the largest server."},
	}
}

// options indexes command options by name.
type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func newOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	m := make(options, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func (o options) str(name string) string {
	if v, ok := o[name]; ok {
		return v.StringValue()
	}
	return ""
}

func (o options) integer(name string, def int) int {
	if v, ok := o[name]; ok {
		return int(v.IntValue())
	}
	return def
}
