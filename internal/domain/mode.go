package domain

// AppMode is the top-level screen the client should render. The set is
// closed: every consumer switches exhaustively over these values.
type AppMode string

const (
	ModeAdmin        AppMode = "ADMIN"
	ModeCMS          AppMode = "CMS"
	ModeGuest        AppMode = "GUEST"
	ModeLanding      AppMode = "LANDING"
	ModeLiliLanding  AppMode = "LILI_LANDING"
	ModeExpired      AppMode = "EXPIRED"
	ModeBlocked      AppMode = "BLOCKED"
	ModeRevoked      AppMode = "REVOKED"
	ModeLoading      AppMode = "LOADING"
	ModeReconnecting AppMode = "RECONNECTING"
)

// AppState describes what one session should render. Config is only
// populated in GUEST mode; GUEST, ADMIN and the landing modes are all steady
// states, there is no separate terminal state.
type AppState struct {
	Mode   AppMode     `json:"mode"`
	Config GuestConfig `json:"config"`
}
