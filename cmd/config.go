package cmd

// Config carries everything the process reads from its environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	GeminiAPIKey         string
	GeminiBaseURL        string
	GeminiTimeoutSeconds int

	AssignmentRetrySchedule    string
	TransitProgressionSchedule string
}
