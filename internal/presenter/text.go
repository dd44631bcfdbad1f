package presenter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"FlipCheck/internal/domain/models"
)

// MaxMessageLength is Discord's limit for plain message content.
const MaxMessageLength = 2000

// GenericError is shown for anything without a specific message.
const GenericError = "An error occurred while processing your request."

// AuctionsText renders auctions as plain text, dropping whole entries that
// would push the message past MaxMessageLength.
func AuctionsText(res models.AuctionsResult) string {
	if len(res.Auctions) == 0 {
		return "No auction data available for this player."
	}

	var b strings.Builder
	b.WriteString("Auction Data:\n\n")
	for i, a := range res.Auctions {
		entry := fmt.Sprintf("**Auction %d:**\nItem Name: %s\nCategory: %s\nTier: %s\nStarting Bid: %s\nHighest Bid Amount: %s\n\n",
			i+1, a.ItemName, a.Category, a.Tier, Coins(a.StartingBid), Coins(a.HighestBidAmount))
		more := fmt.Sprintf("...and %d more.", len(res.Auctions)-i)
		if b.Len()+len(entry)+len(more) > MaxMessageLength {
			b.WriteString(more)
			break
		}
		b.WriteString(entry)
	}
	return strings.TrimRight(b.String(), "\n")
}

// WebhookText reports the outcome of a webhook deletion.
func WebhookText(deleted bool) string {
	if deleted {
		return "Webhook deleted successfully."
	}
	return "Failed to delete the webhook."
}

// ErrorMessage maps a pipeline error to what the user sees. Unknown errors get
// GenericError; details stay in the logs.
func ErrorMessage(err error) string {
	var rl *models.RateLimitError
	switch {
	case errors.As(err, &rl):
		return fmt.Sprintf("You are on cooldown. Try again in %s.", rl.RetryAfter.Round(time.Second))
	case errors.Is(err, models.ErrInvalidWindow):
		return "Sorry, the bot can only retrieve flip data for up to 7 days due to API limitations."
	case errors.Is(err, models.ErrIdentityNotFound):
		return "Unable to retrieve UUID for the provided IGN."
	case errors.Is(err, models.ErrIdentityUnavailable):
		return "The Mojang API is not responding right now. Please try again later."
	case errors.Is(err, models.ErrHistoryFetchFailed), errors.Is(err, models.ErrMalformedTimestamp):
		return "An error occurred while fetching flip data."
	case errors.Is(err, models.ErrAuctionsUnavailable):
		return "Failed to retrieve auction data from the Hypixel API."
	case errors.Is(err, models.ErrInvalidWebhookURL):
		return "That is not a Discord webhook URL."
	default:
		return GenericError
	}
}
