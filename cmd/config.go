package main

import "time"

type Config struct {
	APIAddr  string `env:"API_ADDR,required=true"`
	APIToken string `env:"API_TOKEN,required=true"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	NumberOfWorkers int           `env:"NUMBER_OF_WORKERS,default=1"`
	BufferSize      int           `env:"BUFFER_SIZE,default=256"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT,default=30s"`

	// RETRY_MAX_ATTEMPTS=1 disables part retries entirely.
	RetryMaxAttempts uint64        `env:"RETRY_MAX_ATTEMPTS,default=1"`
	RetryInterval    time.Duration `env:"RETRY_INTERVAL,default=500ms"`

	AutoProcess    bool          `env:"AUTO_PROCESS,default=false"`
	ProcessType    string        `env:"PROCESS_TYPE,default=transcription"`
	TargetHardware string        `env:"TARGET_HARDWARE,default=cpu"`
	PollInterval   time.Duration `env:"POLL_INTERVAL,default=3s"`

	// Empty disables the on-disk upload journal.
	JournalPath string `env:"JOURNAL_PATH"`
}
