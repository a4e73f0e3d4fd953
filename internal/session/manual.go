package session

import (
	"context"
	"errors"
	"log"
	"net/url"
	"regexp"
	"strings"

	"flatguide/internal/domain"
	"flatguide/internal/guestconfig"
)

// manualSegmentRe validates a code extracted from a pasted URL's path.
var manualSegmentRe = regexp.MustCompile(`^[a-zA-Z0-9]{3,20}$`)

// ExtractManualCode turns free-form user input into a reservation id. Guests
// paste anything: bare codes, the full guide link, a link with the code as a
// query parameter. Parse failures degrade to using the trimmed input as a
// literal code.
func ExtractManualCode(raw string) string {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	looksLikeURL := strings.Contains(lower, "http") ||
		strings.Contains(lower, ".com") ||
		strings.Contains(lower, ".app")
	if !looksLikeURL {
		return trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		log.Printf("warn: manual input looked like a URL but did not parse: %v", err)
		return trimmed
	}
	if rid := strings.TrimSpace(u.Query().Get("rid")); rid != "" {
		return rid
	}
	for _, seg := range reverse(strings.Split(u.Path, "/")) {
		if seg == "" {
			continue
		}
		if manualSegmentRe.MatchString(seg) {
			return seg
		}
		break
	}
	return trimmed
}

// ResolveManual is the secondary entry point: the guest typed or pasted a
// code after landing on BLOCKED or EXPIRED. A resolved id is persisted, then
// classified through the same rules as the automatic path.
func (r *Resolver) ResolveManual(ctx context.Context, raw string) (Resolution, error) {
	code := ExtractManualCode(raw)
	if code == "" {
		return steady(domain.ModeBlocked), nil
	}

	r.notify(domain.ModeLoading)

	cfg, err := r.fetcher.Fetch(ctx, code)
	if err != nil {
		if !errors.Is(err, guestconfig.ErrNotFound) {
			log.Printf("warn: manual guest config fetch failed: %v", err)
		}
		return steady(domain.ModeBlocked), nil
	}

	if err := r.store.Set(ctx, KeyLastRID, code); err != nil {
		log.Printf("warn: persisting reservation id: %v", err)
	}
	return r.classify(ctx, cfg, false), nil
}

func reverse(in []string) []string {
	out := make([]string, 0, len(in))
	for i := len(in) - 1; i >= 0; i-- {
		out = append(out, in[i])
	}
	return out
}
