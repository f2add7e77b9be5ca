package config

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// SQLiteConfig cobre os pragmas de performance que não passam pela DSN
// (journal_mode, synchronous, busy_timeout e foreign_keys já vão na string
// de conexão).
type SQLiteConfig struct {
	CacheSizeKB int    // negativo = KB, positivo = páginas
	TempStore   string // "MEMORY" ou "FILE"
	MmapSize    int64
}

func GetSQLiteConfig() SQLiteConfig {
	cfg := SQLiteConfig{
		CacheSizeKB: -16000,
		TempStore:   "MEMORY",
		MmapSize:    256 << 20,
	}

	if v, ok := os.LookupEnv("SQLITE_CACHE_SIZE"); ok {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.CacheSizeKB = i
		}
	} else if ramMB := detectRAM(); ramMB > 0 {
		cfg.CacheSizeKB = calculateCacheSize(ramMB)
	}

	if v, ok := os.LookupEnv("SQLITE_TEMP_STORE"); ok {
		v = strings.ToUpper(v)
		if v == "MEMORY" || v == "FILE" {
			cfg.TempStore = v
		}
	}

	return cfg
}

// calculateCacheSize reserva ~2% da RAM para page cache, entre 8MB e 256MB.
func calculateCacheSize(ramMB int) int {
	cacheMB := int(math.Floor(float64(ramMB) * 0.02))
	cacheMB = max(cacheMB, 8)
	cacheMB = min(cacheMB, 256)
	return -cacheMB * 1024
}

func detectRAM() int {
	if v, ok := os.LookupEnv("SYSTEM_RAM_MB"); ok {
		if mb, err := strconv.Atoi(v); err == nil && mb > 0 {
			return mb
		}
	}

	// Fora do Linux o arquivo não existe e o default fica valendo.
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0
	}
	for line := range strings.SplitSeq(string(data), "\n") {
		if strings.HasPrefix(line, "MemTotal:") {
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				if kb, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
					return int(kb / 1024)
				}
			}
		}
	}
	return 0
}

func (c SQLiteConfig) ApplyPragmas(db *sql.DB) error {
	pragmas := []struct {
		name  string
		value string
	}{
		{"cache_size", strconv.Itoa(c.CacheSizeKB)},
		{"temp_store", c.TempStore},
		{"mmap_size", strconv.FormatInt(c.MmapSize, 10)},
		{"wal_autocheckpoint", "1000"},
	}

	for _, p := range pragmas {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			return fmt.Errorf("failed to set PRAGMA %s: %w", p.name, err)
		}
	}

	return nil
}
