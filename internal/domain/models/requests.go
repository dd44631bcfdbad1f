package models

import "strconv"

// Requests for the HTTP API. Bound from query/body, defaulted, then validated.

// FlipStatsRequest keeps Days as text so an explicit 0 is not replaced by the default.
type FlipStatsRequest struct {
	Player string `query:"player" json:"player" validate:"required,min=1,max=16"`
	Days   string `query:"days" json:"days" default:"7" validate:"numeric"`
}

// WindowDays returns the parsed window. Range checks happen in the use case.
func (r FlipStatsRequest) WindowDays() int {
	n, err := strconv.Atoi(r.Days)
	if err != nil {
		return 0
	}
	return n
}

type MacroCheckRequest struct {
	Player string `query:"player" json:"player" validate:"required,min=1,max=16"`
}

type AuctionsRequest struct {
	Player string `query:"player" json:"player" validate:"required,min=1,max=16"`
}

type WebhookDeleteRequest struct {
	URL string `json:"url" validate:"required,url"`
}
