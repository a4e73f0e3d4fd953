package guide

import (
	"time"

	"flatguide/internal/domain"
	"flatguide/internal/stay"
)

// ResolveSessionRequest carries the browser's environment signals: the URL
// the page loaded on and whether it runs inside the native shell.
type ResolveSessionRequest struct {
	Path        string            `json:"path" binding:"required"`
	Query       map[string]string `json:"query"`
	NativeShell bool              `json:"nativeShell"`
}

type ResolveSessionResponse struct {
	Mode     domain.AppMode      `json:"mode"`
	Config   *domain.GuestConfig `json:"config,omitempty"`
	StripURL bool                `json:"stripUrl,omitempty"`
}

type ResolveManualRequest struct {
	Input string `json:"input" binding:"required"`
}

type StayStatusResponse struct {
	stay.Derivation
	Now time.Time `json:"now"`
}

type AlertsResponse struct {
	Global   string `json:"global,omitempty"`
	Personal string `json:"personal,omitempty"`
}

type DismissAlertRequest struct {
	Scope     string `json:"scope" binding:"required,oneof=global personal"`
	GuestName string `json:"guestName"`
	Text      string `json:"text" binding:"required"`
}
