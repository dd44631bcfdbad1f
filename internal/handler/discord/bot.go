// Package discord adapts the use cases to Discord slash commands.
package discord

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/bwmarrin/discordgo"

	"FlipCheck/internal/domain/repository"
	"FlipCheck/internal/presenter"
	"FlipCheck/internal/usecase"
	applogger "FlipCheck/pkg/logger"
)

// commandTimeout bounds one slash command, upstream calls included.
const commandTimeout = 30 * time.Second

// reply is what a command produces before it is mapped to Discord types.
type reply struct {
	content string
	cards   []presenter.Card
	// followup is sent as a second message carrying the more-info button.
	followup *presenter.Card
}

// Bot owns the gateway session and routes interactions to use cases.
type Bot struct {
	session    *discordgo.Session
	guildID    string
	flipStats  *usecase.FlipStats
	macroCheck *usecase.MacroCheck
	auctions   *usecase.Auctions
	webhooks   *usecase.WebhookDelete
	l          *applogger.Logger
	ctx        context.Context
}

func NewBot(
	session *discordgo.Session,
	guildID string,
	flipStats *usecase.FlipStats,
	macroCheck *usecase.MacroCheck,
	auctions *usecase.Auctions,
	webhooks *usecase.WebhookDelete,
	l *applogger.Logger,
) *Bot {
	return &Bot{
		session:    session,
		guildID:    guildID,
		flipStats:  flipStats,
		macroCheck: macroCheck,
		auctions:   auctions,
		webhooks:   webhooks,
		l:          l.With("discord"),
		ctx:        context.Background(),
	}
}

// Run opens the gateway and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx
	b.session.Identify.Intents = discordgo.IntentsGuilds
	removeReady := b.session.AddHandler(b.onReady)
	removeInteraction := b.session.AddHandler(b.onInteraction)
	defer removeReady()
	defer removeInteraction()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	b.l.Info("discord session opened")

	<-ctx.Done()
	if err := b.session.Close(); err != nil {
		b.l.Warn("discord session close failed", applogger.Error(err))
	}
	b.l.Info("discord session closed")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	cmds, err := s.ApplicationCommandBulkOverwrite(r.User.ID, b.guildID, Commands())
	if err != nil {
		b.l.Error("register commands failed", applogger.Error(err))
		return
	}
	b.l.Info("bot ready",
		applogger.String("user", r.User.Username),
		applogger.Int("guilds", len(r.Guilds)),
		applogger.Int("commands", len(cmds)),
	)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			b.l.Error("interaction panic",
				applogger.Any("panic", r),
				applogger.String("stack", string(debug.Stack())),
			)
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.onCommand(s, i)
	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID == moreInfoID {
			b.respond(s, i, &discordgo.InteractionResponseData{
				Content: presenter.MoreInfoText,
				Flags:   discordgo.MessageFlagsEphemeral,
			})
		}
	}
}

func (b *Bot) onCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	opts := newOptions(data.Options)

	switch data.Name {
	case cmdHelp:
		b.respondCards(s, i, presenter.HelpCard())
		return
	case cmdPing:
		b.respondCards(s, i, presenter.PingCard(s.HeartbeatLatency()))
		return
	case cmdMemberCount:
		g, err := s.State.Guild(i.GuildID)
		if err != nil {
			b.respond(s, i, &discordgo.InteractionResponseData{Content: "This command only works in a server."})
			return
		}
		b.respondCards(s, i, presenter.MemberCountCard(g.Name, g.MemberCount))
		return
	case cmdServerCount:
		s.State.RLock()
		card := serverCount(s.State.Guilds)
		s.State.RUnlock()
		b.respondCards(s, i, card)
		return
	}

	// Everything else calls upstream APIs and may exceed the 3s ack window.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		b.l.Error("defer response failed", applogger.String("command", data.Name), applogger.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(b.ctx, commandTimeout)
	defer cancel()

	b.send(s, i, b.safeExecute(ctx, data.Name, opts, userID(i)))
}

// safeExecute runs execute and turns a panic into the generic error reply.
func (b *Bot) safeExecute(ctx context.Context, name string, opts options, user string) (out reply) {
	defer func() {
		if r := recover(); r != nil {
			b.l.Error("command panic",
				applogger.String("command", name),
				applogger.Any("panic", r),
				applogger.String("stack", string(debug.Stack())),
			)
			out = reply{content: presenter.GenericError}
		}
	}()
	return b.execute(ctx, name, opts, user)
}

// execute runs a use case command and renders its result.
func (b *Bot) execute(ctx context.Context, name string, opts options, user string) reply {
	switch name {
	case cmdFlipStats:
		res, err := b.flipStats.Run(ctx, opts.str("player"), opts.integer("days", repository.DefaultWindowDays))
		if err != nil {
			return b.errorReply(name, err)
		}
		return reply{cards: []presenter.Card{presenter.FlipStatsCard(res)}}

	case cmdMacroCheck:
		res, err := b.macroCheck.Run(ctx, "discord:"+user, opts.str("player"))
		if err != nil {
			return b.errorReply(name, err)
		}
		detail, pct := presenter.MacroCheckCards(res)
		return reply{cards: []presenter.Card{detail}, followup: &pct}

	case cmdAuctions:
		res, err := b.auctions.Run(ctx, opts.str("player"))
		if err != nil {
			return b.errorReply(name, err)
		}
		return reply{content: presenter.AuctionsText(res)}

	case cmdWebhookDeleter:
		deleted, err := b.webhooks.Run(ctx, opts.str("webhook_url"))
		if err != nil {
			return b.errorReply(name, err)
		}
		return reply{content: presenter.WebhookText(deleted)}

	default:
		return reply{content: "Unknown command."}
	}
}

func (b *Bot) errorReply(command string, err error) reply {
	msg := presenter.ErrorMessage(err)
	if msg == presenter.GenericError {
		b.l.Error("command failed", applogger.String("command", command), applogger.Error(err))
	}
	return reply{content: msg}
}

func (b *Bot) send(s *discordgo.Session, i *discordgo.InteractionCreate, out reply) {
	edit := &discordgo.WebhookEdit{}
	if out.content != "" {
		edit.Content = &out.content
	}
	if len(out.cards) > 0 {
		embeds := toEmbeds(out.cards)
		edit.Embeds = &embeds
	}
	if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
		b.l.Error("edit response failed", applogger.Error(err))
		return
	}

	if out.followup == nil {
		return
	}
	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds:     []*discordgo.MessageEmbed{toEmbed(*out.followup)},
		Components: moreInfoButton(),
	}); err != nil {
		b.l.Error("followup failed", applogger.Error(err))
	}
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		b.l.Error("respond failed", applogger.Error(err))
	}
}

func (b *Bot) respondCards(s *discordgo.Session, i *discordgo.InteractionCreate, cards ...presenter.Card) {
	b.respond(s, i, &discordgo.InteractionResponseData{Embeds: toEmbeds(cards)})
}

// userID is the rate-limit identity of the caller. Interactions without a
// user fall back to their channel so they do not share one bucket.
func userID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return "channel:" + i.ChannelID
}

func serverCount(guilds []*discordgo.Guild) presenter.Card {
	var largest *discordgo.Guild
	for _, g := range guilds {
		if largest == nil || g.MemberCount > largest.MemberCount {
			largest = g
		}
	}
	if largest == nil {
		return presenter.ServerCountCard(0, "", 0)
	}
	return presenter.ServerCountCard(len(guilds), largest.Name, largest.MemberCount)
}
