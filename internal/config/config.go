// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the standard locations.
const FileName = "cachematrix.yaml"

// EnvPath overrides the config file location.
const EnvPath = "CACHEMATRIX_CFG"

var (
	// ErrNoConfig is returned when no config file exists in any candidate location.
	ErrNoConfig = errors.New("no config file found in standard locations")

	// ErrNotFound is returned when a key is absent and no default was given.
	ErrNotFound = errors.New("config key not found")

	// ErrType is returned when a key holds a value of the wrong type.
	ErrType = errors.New("config value has wrong type")
)

// Type holds a parsed config document. Namespace, when set, is tried as a
// key prefix before the bare key.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config is the process-wide config loaded by Load.
var Config Type

// Load reads the config file and stores it in Config. With an explicit path
// that file is used; otherwise CACHEMATRIX_CFG, XDG_CONFIG_HOME, APPDATA and
// HOME are searched in that order.
func Load(cfgFilePath ...string) (Type, error) {
	var path string
	if len(cfgFilePath) > 0 && cfgFilePath[0] != "" {
		path = cfgFilePath[0]
	} else {
		p, err := getConfigPath()
		if err != nil {
			return Type{}, err
		}
		path = p
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("parse %s: %w", path, err)
	}

	Config = Type{
		Source: path,
		Data:   data,
	}

	return Config, nil
}

// WithNamespace returns a copy of cfg that resolves keys under ns first.
func (cfg Type) WithNamespace(ns string) Type {
	cfg.Namespace = ns
	return cfg
}

// get traverses the map using a dotted key path
func (cfg Type) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		var current interface{} = cfg.Data

		success := true
		for _, part := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[part]
			if !ok {
				success = false
				break
			}
		}

		if success {
			return current, nil
		}
	}

	return nil, fmt.Errorf("%w: tried %v", ErrNotFound, candidateKeys)
}

// GetString returns the string at key, or defaultValue[0] when the key is absent.
func (cfg Type) GetString(key string, defaultValue ...string) (string, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: %w: want string", key, ErrType)
	}

	return s, nil
}

// GetInt returns the integer at key, or defaultValue[0] when the key is absent.
func (cfg Type) GetInt(key string, defaultValue ...int) (int, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: %w: want int", key, ErrType)
	}
}

func getConfigPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		fi, err := os.Stat(p)
		if err != nil {
			return "", err
		}
		if fi.IsDir() {
			return "", fmt.Errorf("%s=%s is a directory", EnvPath, p)
		}
		return p, nil
	}

	candidates := []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, FileName)
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}

	return "", ErrNoConfig
}
