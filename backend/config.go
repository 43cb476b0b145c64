package main

import "sync"

type Config struct {
	HttpAddr string `json:"http_addr"`
	TickMs   int    `json:"tick_ms"`

	AiLogSearchStats bool `json:"ai_log_search_stats"`
	AiLogCache       bool `json:"ai_log_cache"`

	AiParallelRoot    bool `json:"ai_parallel_root"`
	AiParallelWorkers int  `json:"ai_parallel_workers"`

	AiTtSize    int `json:"ai_tt_size"`
	AiTtBuckets int `json:"ai_tt_buckets"`

	AiEnableTtPersistence bool   `json:"ai_enable_tt_persistence"`
	AiTtPersistencePath   string `json:"ai_tt_persistence_path"`
	AiTtSaveOnShutdown    bool   `json:"ai_tt_save_on_shutdown"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		HttpAddr: ":8080",
		TickMs:   50,

		// Logs are noisy at depth 6; turn on temporarily to tune.
		AiLogSearchStats: false,
		AiLogCache:       true,

		// Root candidates search independent windows, so parallel results
		// match sequential ones move for move.
		AiParallelRoot:    true,
		AiParallelWorkers: 4,

		AiTtBuckets: 4,
		AiTtSize:    1 << 18, // 262144 entries

		// Snapshots are operator-triggered through the cache API unless
		// shutdown saving is switched on.
		AiEnableTtPersistence: false,
		AiTtPersistencePath:   "",
		AiTtSaveOnShutdown:    false,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
