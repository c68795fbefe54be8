package logger

import (
	"go.uber.org/zap"
)

// Log starts as a no-op logger so library code and tests can log without
// initialization; Init swaps in the production logger at startup.
var Log = zap.NewNop().Sugar()

func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}
