// Package ipcapi holds the payloads pushed to the UI host as runtime events
// and returned from bound methods.
package ipcapi

import "time"

const (
	EventForegroundChanged = "onForegroundChanged"
	EventIdleStateChanged  = "onIdleStateChanged"
	EventPinnedChanged     = "onPinnedChanged"
	EventExitRequested     = "onExitRequested"
)

type ForegroundChangedEvent struct {
	AppID          string            `json:"appID"`
	Name           string            `json:"name"`
	PID            uint32            `json:"pid"`
	ExecutablePath string            `json:"executablePath"`
	Title          string            `json:"title"`
	ErrorCode      string            `json:"errorCode,omitempty"`
	Context        map[string]string `json:"context,omitempty"`
	AtUTC          int64             `json:"atUTC"`
}

type IdleStateChangedEvent struct {
	Idle            bool  `json:"idle"`
	IdleForMillis   int64 `json:"idleForMillis"`
	LastClickMillis int64 `json:"lastClickMillis"`
	AtUTC           int64 `json:"atUTC"`
}

type PinnedChangedEvent struct {
	Pinned bool  `json:"pinned"`
	Locked bool  `json:"locked"`
	AtUTC  int64 `json:"atUTC"`
}

type StatusDTO struct {
	Session         string `json:"session"`
	Pinned          bool   `json:"pinned"`
	Locked          bool   `json:"locked"`
	HookInstalled   bool   `json:"hookInstalled"`
	ButtonDown      bool   `json:"buttonDown"`
	LastClickMillis int64  `json:"lastClickMillis"`
	IdleForMillis   int64  `json:"idleForMillis"`
}

func NowUTC() int64 { return time.Now().UTC().UnixMilli() }
