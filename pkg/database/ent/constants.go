package ent

// Driver names
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const pingTimeout = 5 // Seconds
