package discord

import (
	"github.com/bwmarrin/discordgo"

	"FlipCheck/internal/presenter"
)

func toEmbed(c presenter.Card) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       c.Title,
		Description: c.Description,
		Color:       c.Color,
	}
	if c.Author != "" {
		e.Author = &discordgo.MessageEmbedAuthor{Name: c.Author}
	}
	if c.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: c.Footer}
	}
	for _, f := range c.Fields {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return e
}

func toEmbeds(cards []presenter.Card) []*discordgo.MessageEmbed {
	out := make([]*discordgo.MessageEmbed, 0, len(cards))
	for _, c := range cards {
		out = append(out, toEmbed(c))
	}
	return out
}

func moreInfoButton() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Click for More Information",
				Style:    discordgo.PrimaryButton,
				CustomID: moreInfoID,
				Emoji:    &discordgo.ComponentEmoji{Name: "😎"},
			},
		}},
	}
}
