package testutil

import "go.uber.org/goleak"

// ContainerLeakOptions ignores goroutines owned by the container runtime client,
// they live as long as the test binary.
func ContainerLeakOptions() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreAnyContainingPkg("github.com/testcontainers/testcontainers-go"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	}
}
