package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/codetrack-backend/internal/clients/codeforces"
	"github.com/yungbote/codetrack-backend/internal/clients/sendgrid"
	"github.com/yungbote/codetrack-backend/internal/logger"
)

type Clients struct {
	Judge codeforces.Client
	Mail  sendgrid.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	judge, err := codeforces.New(log, codeforces.Config{
		BaseURL:         cfg.CodeforcesURL,
		Timeout:         cfg.JudgeTimeout,
		SubmissionCount: cfg.SubmissionCount,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init codeforces client: %w", err)
	}

	// Email is optional: without an API key the reminder endpoints report a
	// clear error instead of the whole app refusing to start.
	var mail sendgrid.Client
	if strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")) != "" {
		mail, err = sendgrid.New(log, sendgrid.ConfigFromEnv(log))
		if err != nil {
			return Clients{}, fmt.Errorf("init sendgrid client: %w", err)
		}
	} else {
		log.Warn("SENDGRID_API_KEY not set, reminder emails disabled")
	}

	return Clients{Judge: judge, Mail: mail}, nil
}
