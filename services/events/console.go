package eventsvc

import (
	"strings"

	"github.com/smartbit/smartbit/core"
)

// ConsoleService logs progress events; the deployed frontend keeps its
// own query cache, so in DEV the signal is only made visible.
type ConsoleService struct {
	logger core.Logger
}

var _ core.EventService = (*ConsoleService)(nil)

func NewConsoleService(logger core.Logger) *ConsoleService {
	return &ConsoleService{logger: logger}
}

func (svc *ConsoleService) ProgressChanged(evt core.ProgressEvent) {
	svc.logger.Debug("progress changed; stale: "+strings.Join(evt.StaleKeys, ", "), core.Actor{ID: evt.UserID})
}
