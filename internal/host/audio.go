package host

import "go.uber.org/zap"

// cueLogger stands in for an audio player; it logs every cue.
type cueLogger struct {
	logger *zap.Logger
	last   string
}

func (a *cueLogger) PlaySound(name string) {
	a.last = name
	a.logger.Debug("sound cue", zap.String("cue", name))
}
