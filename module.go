package scipaper

import "github.com/antflydb/scipaper/config"

// ModuleInitFunc is the symbol a dynamically-loaded backend module exports
// under the name "Init" (§6.4). It receives the Registrar to register
// against, the library's whole configuration source, and the library's
// logger, and returns a non-empty error on failure — a failing module
// init fails the whole library Init (§4.7).
type ModuleInitFunc func(reg Registrar, cfg config.Source, log Sink) error

// ModuleExitFunc is the symbol exported under the name "Exit" (§6.4). It
// is expected to unregister everything the matching Init registered.
type ModuleExitFunc func()

// loadedModule tracks one successfully initialized dynamic module so Exit
// can call its teardown symbol, in reverse load order.
type loadedModule struct {
	path string
	exit ModuleExitFunc
}
