package config

import (
	"flag"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// lookupEnv returns the parsed value of RATCALC_<key>, or def when the
// variable is unset, empty or unparsable.
func lookupEnv[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func getEnvString(key, def string) string {
	return lookupEnv(key, def, func(s string) (string, error) { return s, nil })
}

func getEnvInt(key string, def int) int { return lookupEnv(key, def, strconv.Atoi) }

func getEnvFloat(key string, def float64) float64 {
	return lookupEnv(key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	return lookupEnv(key, def, time.ParseDuration)
}

// getEnvBool accepts true/1/yes and false/0/no in any case.
func getEnvBool(key string, def bool) bool {
	return lookupEnv(key, def, parseEnvBool)
}

func parseEnvBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, strconv.ErrSyntax
}

// isFlagSet reports whether any of the named flags was given explicitly.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		found = found || slices.Contains(names, f.Name)
	})
	return found
}

// applyEnvOverrides fills every field whose flag was not given from the
// matching RATCALC_* variable:
//
//	RATCALC_ENGINE, RATCALC_PORT, RATCALC_MATRIX, RATCALC_TIMEOUT,
//	RATCALC_EPSILON, RATCALC_MAX_EXPR_LENGTH, RATCALC_SERVER, RATCALC_JSON,
//	RATCALC_VERBOSE, RATCALC_DETAILS, RATCALC_QUIET, RATCALC_INTERACTIVE,
//	RATCALC_NO_COLOR
//
// Expressions and input files are deliberately not read from the
// environment.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "engine") {
		config.Engine = getEnvString("ENGINE", config.Engine)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "matrix") {
		config.MatrixFile = getEnvString("MATRIX", config.MatrixFile)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "epsilon") {
		config.Epsilon = getEnvFloat("EPSILON", config.Epsilon)
	}
	if !isFlagSet(fs, "max-expr-length") {
		config.MaxExprLength = getEnvInt("MAX_EXPR_LENGTH", config.MaxExprLength)
	}
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "v") {
		config.Verbose = getEnvBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "d", "details") {
		config.Details = getEnvBool("DETAILS", config.Details)
	}
	if !isFlagSet(fs, "quiet", "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "interactive", "i") {
		config.Interactive = getEnvBool("INTERACTIVE", config.Interactive)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
