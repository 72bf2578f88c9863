package external

import (
	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"chargewatch/config"
)

func InitSentry(cfg *config.Config) {
	if cfg.Sentry.DSN != "" {
		log.Infof("Sentry init")

		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Debug:            false,
			EnableTracing:    cfg.Sentry.EnableTracing,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
			SampleRate:       cfg.Sentry.SampleRate,
		})
		if err != nil {
			log.Errorf("Sentry Init Failed: %s", err)
		}
	}
}
