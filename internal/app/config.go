package app

import (
	"strings"
	"time"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/utils"
)

type Config struct {
	Port            string
	Environment     string
	Version         string
	AllowOrigins    []string
	SyncPacing      time.Duration
	CodeforcesURL   string
	JudgeTimeout    time.Duration
	SubmissionCount int
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	environment := utils.GetEnv("ENVIRONMENT", "development", log)
	version := utils.GetEnv("APP_VERSION", "dev", log)
	rawOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)
	pacingMs := utils.GetEnvAsInt("SYNC_PACING_MS", 1000, log)
	codeforcesURL := utils.GetEnv("CODEFORCES_BASE_URL", "https://codeforces.com/api", log)
	judgeTimeoutSec := utils.GetEnvAsInt("CODEFORCES_TIMEOUT_SECONDS", 30, log)
	submissionCount := utils.GetEnvAsInt("CODEFORCES_SUBMISSION_COUNT", 10000, log)

	var origins []string
	for _, o := range strings.Split(rawOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		Port:            port,
		Environment:     environment,
		Version:         version,
		AllowOrigins:    origins,
		SyncPacing:      time.Duration(pacingMs) * time.Millisecond,
		CodeforcesURL:   codeforcesURL,
		JudgeTimeout:    time.Duration(judgeTimeoutSec) * time.Second,
		SubmissionCount: submissionCount,
	}
}
