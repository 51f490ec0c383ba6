package builder

import (
	"go.uber.org/zap"

	"github.com/dshills/kpisynth/internal/schema"
)

func zapProcess(p schema.Process) zap.Field { return zap.String("process", string(p)) }

func zapCount(n int) zap.Field { return zap.Int("series", n) }
