package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS        = "" // e.g. "drive.example.com,files.example.com"
	MYSQL_DSN          = "" // MySQL will be used if this is set
	SQLITE_FILE        = "" // SQLite will be used if MYSQL_DSN is not configured and this is set
	BIND_ADDRESS       = "0.0.0.0:8080"
	TMP_DIR            = "/tmp" // Used as local scratch space in case of S3 buckets
	DEFAULT_BUCKET_DIR = ""     // Used for creating the initial bucket
	DEBUG_MODE         = true
	DEFAULT_QUOTA      = int64(1073741824) // Default per-user storage quota in bytes (1 GiB)
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvInt64("DEFAULT_QUOTA", &DEFAULT_QUOTA)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt64(name string, value *int64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return
	}
	*value = f
}
