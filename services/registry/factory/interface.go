package factory

// Server defines the registry web server operations
type Server interface {
	Start()
	Address() string
	Close() error
}
