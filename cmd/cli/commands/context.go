package commands

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/jakechorley/care-rostering/internal/config"
	"github.com/jakechorley/care-rostering/pkg/core/holidays"
	"github.com/jakechorley/care-rostering/pkg/utils/metrics"
)

// Output formats
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Calendar *holidays.Calendar
	Recorder *metrics.Recorder
	Logger   *zap.Logger
	Ctx      context.Context

	// Out receives command output; Format is FormatJSON or FormatTable
	Out    io.Writer
	Format string
}
