package ui

import (
	"time"

	"github.com/coastwatch/buoyant/internal/models"
)

// resolvedMsg carries a completed resolution back into the update loop.
type resolvedMsg struct {
	result *models.SeaStateResult
}

// resolveFailedMsg carries a gate rejection or total failure.
type resolveFailedMsg struct {
	err error
}

// refreshTickMsg fires when the periodic refresh interval elapses.
type refreshTickMsg time.Time
