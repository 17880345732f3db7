package cmd

// Config carries everything the application needs from the environment.
type Config struct {
	HTTPPort string

	// Store selects the persistence backend: "postgres" or "memory".
	Store string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// ExpirySchedule is the six-field cron expression of the expiry sweep.
	ExpirySchedule string
}
