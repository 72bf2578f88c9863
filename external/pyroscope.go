package external

import (
	"os"
	"runtime"

	"github.com/grafana/pyroscope-go"
	log "github.com/sirupsen/logrus"

	"chargewatch/config"
)

func InitPyroscope(cfg *config.Config) {
	if cfg.Pyroscope.ServerAddress != "" {
		log.Infof("Pyroscope starting")

		runtime.SetMutexProfileFraction(cfg.Pyroscope.MutexProfileFraction)
		runtime.SetBlockProfileRate(cfg.Pyroscope.BlockProfileRate)

		pyroscopeConfig := pyroscope.Config{
			ApplicationName: cfg.Pyroscope.ApplicationName,
			ServerAddress:   cfg.Pyroscope.ServerAddress,
			Tags:            map[string]string{"hostname": os.Getenv("HOSTNAME")},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,

				pyroscope.ProfileGoroutines,
				pyroscope.ProfileMutexCount,
				pyroscope.ProfileMutexDuration,
				pyroscope.ProfileBlockCount,
				pyroscope.ProfileBlockDuration,
			},
		}

		if cfg.Pyroscope.Logger {
			pyroscopeConfig.Logger = pyroscope.StandardLogger
		} else {
			pyroscopeConfig.Logger = nil
		}

		if apiKey := cfg.Pyroscope.ApiKey; apiKey != "" {
			pyroscopeConfig.HTTPHeaders = map[string]string{
				"Authorization": "Bearer " + apiKey,
			}
		}

		_, err := pyroscope.Start(pyroscopeConfig)

		if err != nil {
			log.Errorf("Pyroscope Init Failed: %s", err)
		}
	}
}
