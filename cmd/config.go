package cmd

// Config carries all environment-driven settings of the service.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RabbitHost     string
	RabbitPort     string
	RabbitUser     string
	RabbitPassword string
}
