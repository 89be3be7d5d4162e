package config

import "os"

func IsDebug() bool {
	return os.Getenv("LOCBOT_DEBUG") == "1"
}
