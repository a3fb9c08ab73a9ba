package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	ini "gopkg.in/ini.v1"
)

// IniConfig layers up to four INI sources in precedence order (later
// overrides earlier, per key — not per file): a system-wide config file, a
// per-user config file under $HOME, a caller-supplied path (only if it has
// an ".ini" suffix), and caller-supplied in-memory bytes. A lookup walks the
// loaded files from highest to lowest precedence and returns the first file
// that actually has the requested key, matching the original keyfile
// chain's "search newest-loaded first" behavior.
type IniConfig struct {
	files []*ini.File
}

// SystemConfigPath is the default system-wide config file location.
const SystemConfigPath = "/etc/scipaper.ini"

// UserConfigName is the filename looked up under $HOME.
const UserConfigName = ".scipaper.ini"

// Load builds an IniConfig from the four precedence-ordered sources. Any
// source that does not exist or cannot be parsed is silently skipped,
// mirroring the original loader's tolerance for optional config files.
func Load(callerPath string, callerBytes []byte) *IniConfig {
	c := &IniConfig{}

	if data, err := os.ReadFile(SystemConfigPath); err == nil {
		if f, err := ini.Load(data); err == nil {
			c.files = append(c.files, f)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, UserConfigName)
		if data, err := os.ReadFile(userPath); err == nil {
			if f, err := ini.Load(data); err == nil {
				c.files = append(c.files, f)
			}
		}
	}

	if callerPath != "" && strings.EqualFold(filepath.Ext(callerPath), ".ini") {
		if data, err := os.ReadFile(callerPath); err == nil {
			if f, err := ini.Load(data); err == nil {
				c.files = append(c.files, f)
			}
		}
	}

	if len(callerBytes) > 0 {
		if f, err := ini.Load(bytes.TrimSpace(callerBytes)); err == nil {
			c.files = append(c.files, f)
		}
	}

	return c
}

func (c *IniConfig) findKey(group, key string) *ini.Key {
	for i := len(c.files) - 1; i >= 0; i-- {
		sec, err := c.files[i].GetSection(group)
		if err != nil {
			continue
		}
		if sec.HasKey(key) {
			return sec.Key(key)
		}
	}
	return nil
}

func (c *IniConfig) GetString(group, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	k := c.findKey(group, key)
	if k == nil {
		return "", false
	}
	return k.String(), true
}

func (c *IniConfig) GetInt(group, key string) (int, bool) {
	if c == nil {
		return 0, false
	}
	k := c.findKey(group, key)
	if k == nil {
		return 0, false
	}
	v, err := k.Int()
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c *IniConfig) GetStringList(group, key string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	k := c.findKey(group, key)
	if k == nil {
		return nil, false
	}
	return k.Strings(","), true
}

// Close releases the loaded INI files. IniConfig holds no external
// resources, so Close only guards against use-after-close.
func (c *IniConfig) Close() error {
	c.files = nil
	return nil
}

var _ Source = (*IniConfig)(nil)
