package logging

import "github.com/arloliu/affinity/types"

// Namer is implemented by loggers that can tag messages with a component name.
type Namer interface {
	Named(name string) types.Logger
}

// Named returns logger tagged with component name when it supports it, and
// logger unchanged otherwise.
//
// Example:
//
//	clusterLogger := logging.Named(logger, "cluster")
func Named(logger types.Logger, name string) types.Logger {
	if n, ok := logger.(Namer); ok {
		return n.Named(name)
	}

	return logger
}
