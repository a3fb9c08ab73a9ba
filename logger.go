package scipaper

import "github.com/antflydb/scipaper/logging"

// Sink is the leveled logger the registry and federation engine log
// through. It is an alias of logging.Sink so callers can pass either name
// interchangeably; the concrete type lives in package logging because it
// is also used standalone by the transport package.
type Sink = logging.Sink

// Noop discards everything; the safe zero value for Library.Log.
var Noop Sink = logging.Noop
