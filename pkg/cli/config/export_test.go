package config

import "time"

// NewShiftForTest creates a Shift config as if the flags were given
func NewShiftForTest(path, workStart, workEnd string, pollInterval time.Duration, pollMaxAttempts int) *Shift {
	return &Shift{
		path:            path,
		workStart:       workStart,
		workEnd:         workEnd,
		pollInterval:    pollInterval,
		pollMaxAttempts: pollMaxAttempts,
	}
}

// NewStravaForTest creates a Strava config for testing purposes
func NewStravaForTest(clientID, clientSecret, verifyToken, baseURL string) *Strava {
	return &Strava{
		clientID:     clientID,
		clientSecret: clientSecret,
		verifyToken:  verifyToken,
		baseURL:      baseURL,
	}
}

// NewLoopsForTest creates a Loops config for testing purposes
func NewLoopsForTest(apiKey, transactionalID string) *Loops {
	return &Loops{
		apiKey:          apiKey,
		transactionalID: transactionalID,
	}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(webhookURL, botToken, channelID string) *Slack {
	return &Slack{
		webhookURL: webhookURL,
		botToken:   botToken,
		channelID:  channelID,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
