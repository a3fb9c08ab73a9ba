package scipaper

import (
	"fmt"
	"path/filepath"
	"plugin"
	"runtime"

	"github.com/antflydb/scipaper/config"
	"github.com/antflydb/scipaper/logging"
)

// Library is the process-wide handle the rest of this package's methods
// hang off. Per §5 its state — the backend registry, the config layering,
// and every backend's own private state — is process-wide by design; the
// library is built for a single cooperative caller unless a backend
// documents thread-safety.
type Library struct {
	registry *registry
	Log      Sink
	Config   config.Source

	modules []loadedModule
	metrics *stats
}

// InitOption configures Init.
type InitOption func(*initOptions)

type initOptions struct {
	logConfig  *logging.Config
	configPath string
	configData []byte
}

// WithLogConfig selects the logging style/level used during Init, rather
// than the terminal/info default (§4.7 step 1, "open logging to stderr").
func WithLogConfig(c logging.Config) InitOption {
	return func(o *initOptions) { o.logConfig = &c }
}

// WithConfigPath supplies the caller-specified config path (§4.7 step 2,
// third layering source). Only used if it has an ".ini" suffix.
func WithConfigPath(path string) InitOption {
	return func(o *initOptions) { o.configPath = path }
}

// WithConfigBytes supplies caller-specified in-memory config bytes (§4.7
// step 2, fourth and highest-precedence layering source).
func WithConfigBytes(data []byte) InitOption {
	return func(o *initOptions) { o.configData = data }
}

// Init builds a Library per §4.7: opens logging, layers configuration,
// then discovers and initializes the configured dynamic modules. A
// module's Init symbol returning a non-empty error fails the whole call.
func Init(opts ...InitOption) (*Library, error) {
	o := &initOptions{}
	for _, opt := range opts {
		opt(o)
	}

	logCfg := o.logConfig
	if logCfg == nil {
		logCfg = &logging.Config{Style: logging.StyleTerminal, Level: logging.LevelInfo}
	}
	log := logging.New(logCfg)

	cfg := config.Load(o.configPath, o.configData)

	lib := &Library{
		registry: newRegistry(log),
		Log:      log,
		Config:   cfg,
	}

	names, _ := cfg.GetStringList("Modules", "Modules")
	if len(names) == 0 {
		log.Infof("scipaper: no Modules/Modules configured, no dynamic backends loaded")
		return lib, nil
	}
	modulePath := config.StringDefault(cfg, "Modules", "ModulePath", "/usr/lib/scipaper/modules")

	for _, name := range names {
		if err := lib.loadModule(modulePath, name); err != nil {
			lib.Exit()
			return nil, fmt.Errorf("scipaper: loading module %q: %w", name, err)
		}
	}

	return lib, nil
}

// NewLibrary builds a Library without any module discovery, for embedders
// that register backends directly (e.g. the reference backends in this
// repository's backends/ packages, and every test in this repository).
func NewLibrary(log Sink, cfg config.Source) *Library {
	if log == nil {
		log = Noop
	}
	return &Library{registry: newRegistry(log), Log: log, Config: cfg}
}

// sharedLibSuffix returns the platform-specific dynamic module filename
// suffix referenced by §4.7 step 3 ("platform-specific shared-library
// name").
func sharedLibSuffix() string {
	switch runtime.GOOS {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

func (lib *Library) loadModule(modulePath, name string) error {
	full := filepath.Join(modulePath, name+sharedLibSuffix())
	p, err := plugin.Open(full)
	if err != nil {
		return fmt.Errorf("opening %s: %w", full, err)
	}
	initSym, err := p.Lookup("Init")
	if err != nil {
		return fmt.Errorf("%s: missing Init symbol: %w", full, err)
	}
	initFn, ok := initSym.(ModuleInitFunc)
	if !ok {
		if fn, ok2 := initSym.(func(Registrar, config.Source, Sink) error); ok2 {
			initFn = fn
		} else {
			return fmt.Errorf("%s: Init symbol has the wrong type", full)
		}
	}
	exitSym, err := p.Lookup("Exit")
	if err != nil {
		return fmt.Errorf("%s: missing Exit symbol: %w", full, err)
	}
	exitFn, ok := exitSym.(ModuleExitFunc)
	if !ok {
		if fn, ok2 := exitSym.(func()); ok2 {
			exitFn = fn
		} else {
			return fmt.Errorf("%s: Exit symbol has the wrong type", full)
		}
	}

	if err := initFn(lib.registry, lib.Config, lib.Log); err != nil {
		return fmt.Errorf("%s: module init failed: %w", full, err)
	}
	lib.modules = append(lib.modules, loadedModule{path: full, exit: exitFn})
	return nil
}

// Exit tears the library down per §4.7: call every loaded module's exit
// symbol, close the configuration, and warn if any backend failed to
// unregister itself.
func (lib *Library) Exit() {
	for i := len(lib.modules) - 1; i >= 0; i-- {
		lib.modules[i].exit()
	}
	lib.modules = nil

	if closer, ok := lib.Config.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			lib.Log.Warnf("scipaper: closing config: %v", err)
		}
	}

	if msg := lib.registry.leakWarning(); msg != "" {
		lib.Log.Warnf("scipaper: %s", msg)
	}
}

// BackendCount returns the number of currently registered backends, 0
// after a clean Exit (testable property 8, post-teardown invariant).
func (lib *Library) BackendCount() int {
	return lib.registry.Count()
}

// Backends returns the current descriptor snapshot, in registration
// order.
func (lib *Library) Backends() []BackendDescriptor {
	return lib.registry.Snapshot()
}

// BackendIDByName returns the id of the backend named n, or 0 if absent.
func (lib *Library) BackendIDByName(n string) int {
	return lib.registry.idByName(n)
}

// Register registers a backend directly against this library (Registrar).
func (lib *Library) Register(desc BackendDescriptor, fill FillFunc, getText GetTextFunc, getPDF GetPDFFunc) int {
	return lib.registry.Register(desc, fill, getText, getPDF)
}

// Unregister removes a backend by id.
func (lib *Library) Unregister(id int) {
	lib.registry.Unregister(id)
}

var _ Registrar = (*Library)(nil)
