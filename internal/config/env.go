package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// envReader reads typed environment variables and collects parse failures.
type envReader struct {
	errs []error
}

func (r *envReader) String(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func (r *envReader) Int(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s=%q: not an integer", name, v))
		return def
	}
	return i
}

func (r *envReader) Float(name string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s=%q: not a number", name, v))
		return def
	}
	return f
}

// Err returns every parse failure, or nil.
func (r *envReader) Err() error {
	if err := errors.Join(r.errs...); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	return nil
}
