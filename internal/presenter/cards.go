package presenter

import (
	"fmt"
	"time"

	"FlipCheck/internal/domain/models"
)

const (
	macroDisclaimer = "Disclaimer: These results are not definitive proof of macroing. " +
		"They are an indication based on available data."
	percentageDisclaimer = "Macroing percentage is an indication based on a multitude of factors, " +
		"all may/can produce inaccurate results. DO NOT base this information on a report as it is just an estimation.\n\n" +
		signature
	reactionFlag   = " (:x: Flagged as a low reaction time, this is a beta feature and very inaccurate. :x:)"
	reactionNoInfo = " (No information)"
)

// MoreInfoText answers the "more information" button under a macro check.
const MoreInfoText = "This command checks if a player might be macroing flips based on various factors, " +
	"yet only a few are shown, such as profit, flipping hours, reaction time, and more. " +
	"The explanation for the features can be seen below:\n\n" +
	"- **Profit:** Calculates the total profit made in the last 7 days.\n" +
	"- **Profit (IRL Trading Value):** Converts profit to an estimated real-world trading value using standard rates.\n" +
	"- **Total Flipping Hours:** Counts the hours with at least two flips.\n" +
	"- **Inconsistent Time Pattern:** Detects repeated bursts of flipping late at night.\n" +
	"- **Average Reaction Time:** Measures the average time between buying and selling items. (Beta Feature)\n" +
	"- **Account Age:** Checks if the Minecraft account is older than 30 days. (Beta Feature)\n"

// FlipStatsCard lists total profit and the top flips.
func FlipStatsCard(res models.FlipStatsResult) Card {
	c := Card{
		Title: fmt.Sprintf("Flip Statistics for %s (Last %d Days)", res.Player, res.Days),
		Color: ColorBlue,
	}
	c.add("Total Profit", Coins(res.Total), false)
	for i, f := range res.TopFlips {
		c.add(fmt.Sprintf("Flip %d", i+1),
			fmt.Sprintf("Item: %s\nTier: %s\nProfit: %s", f.ItemName, f.Tier, Coins(f.Profit)), true)
	}
	return c
}

func suspicionColor(s models.Suspicion) int {
	if s == models.SuspicionHigh {
		return ColorRed
	}
	return ColorGreen
}

// MacroCheckCards returns the signal breakdown and the percentage card.
func MacroCheckCards(res models.MacroCheckResult) (Card, Card) {
	color := suspicionColor(res.Suspicion)
	s := res.Signals

	detail := Card{
		Title:  fmt.Sprintf("Macro-Check Results for %s (Last %d Days)", res.Player, res.Days),
		Color:  color,
		Footer: macroDisclaimer,
	}
	detail.add("Profit", Coins(s.TotalProfit), false)
	detail.add("Profit (IRL Trading Value)", "$"+s.TradingValue, false)
	detail.add("Total Flipping Hours", fmt.Sprintf("%d hours", s.TotalFlippingHours), false)
	detail.add("Inconsistent Time Pattern", detected(s.InconsistentPattern), false)
	detail.add("Average Reaction Time (**BETA FEATURE**)", reactionValue(s), false)
	detail.add("Account Age (**BETA FEATURE**)", AccountAgeLabel(res.Score.AccountAge), false)

	pct := Card{
		Title:       "Macroing Percentage",
		Description: fmt.Sprintf("**%.2f%%**", res.Score.CompositeScore),
		Color:       color,
		Footer:      percentageDisclaimer,
	}
	return detail, pct
}

func detected(b bool) string {
	if b {
		return "Detected"
	}
	return "Not Detected"
}

func reactionValue(s models.Signals) string {
	v := fmt.Sprintf("%.2f minutes", s.AvgReactionMinutes)
	switch {
	case s.ReactionSamples == 0:
		return v + reactionNoInfo
	case s.FastReaction:
		return v + reactionFlag
	default:
		return v
	}
}

// AccountAgeLabel is the human form of an account age class.
func AccountAgeLabel(a models.AccountAgeClass) string {
	switch a {
	case models.AccountOlderThan30Days:
		return "older than 30 days"
	case models.AccountNew:
		return "new account"
	default:
		return "unknown"
	}
}

// HelpCard lists the commands and data sources.
func HelpCard() Card {
	c := Card{Title: "Bot Commands", Color: ColorBlue}
	c.add("`/flipstats <player> [days]`", "Sends information of a flipper.", false)
	c.add("`/macrocheck <player>`", "Check if a player is macroing flips.", false)
	c.add("`/auctions <player>`", "Lists a player's active auctions.", false)
	c.add("`/webhookdeleter <url>`", "Deletes a webhook, we hate ratters!", false)
	c.Footer = "This bot uses data from Mojang API, Coflsky API, and Hypixel API to provide information.\n" +
		"Mojang API: https://api.mojang.com/\n" +
		"Coflsky API: https://sky.coflnet.com/\n" +
		"Hypixel API: https://api.hypixel.net/\n\n" +
		signature
	return c
}

func PingCard(latency time.Duration) Card {
	return Card{
		Author:      "Pong!",
		Description: fmt.Sprintf("Latency: %dms", latency.Milliseconds()),
		Footer:      signature,
	}
}

func MemberCountCard(guild string, members int) Card {
	return Card{
		Author:      "Membercount of " + guild,
		Description: fmt.Sprintf("Membercount: %d", members),
		Footer:      signature,
	}
}

// ServerCountCard reports the guild count and the largest guild, if any.
func ServerCountCard(servers int, largest string, largestMembers int) Card {
	info := "No servers found."
	if largest != "" {
		info = fmt.Sprintf("Largest Server: %s (Members: %d)", largest, largestMembers)
	}
	return Card{
		Author:      "Server Count",
		Description: fmt.Sprintf("I am currently in %d servers.\n%s", servers, info),
		Footer:      signature,
	}
}
