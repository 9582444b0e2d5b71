package replicapool

import (
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ReplicaConfig names one replica and its operator-assigned priority;
// smaller priorities are preferred.
type ReplicaConfig struct {
	Name     string `json:"Name" yaml:"Name"`
	Priority int64  `json:"Priority" yaml:"Priority"`
}

// PoolConfig represents settings for creating/configuring pools.
type PoolConfig struct {
	MaxTries                   int             `json:"MaxTries" yaml:"MaxTries"`
	DecreaseErrorPeriodSeconds uint32          `json:"DecreaseErrorPeriodSeconds" yaml:"DecreaseErrorPeriodSeconds"`
	FailureWindowSeconds       uint32          `json:"FailureWindowSeconds" yaml:"FailureWindowSeconds"`
	MaxParallelReplicas        int             `json:"MaxParallelReplicas" yaml:"MaxParallelReplicas"`
	SkipUnavailableShards      bool            `json:"SkipUnavailableShards" yaml:"SkipUnavailableShards"`
	Replicas                   []ReplicaConfig `json:"Replicas" yaml:"Replicas"`
}

// ConvertJSONFileToConfig opens a file.json and converts to PoolConfig.
func ConvertJSONFileToConfig(fileNamePath string) (*PoolConfig, error) {
	byteValue, err := os.ReadFile(fileNamePath)
	if err != nil {
		return nil, errors.Wrap(err, "read pool config")
	}

	config := &PoolConfig{}
	var json = jsoniter.ConfigFastest
	if err := json.Unmarshal(byteValue, config); err != nil {
		return nil, errors.Wrap(err, "parse pool config")
	}

	return config, nil
}

// ConvertYAMLFileToConfig opens a file.yaml and converts to PoolConfig.
func ConvertYAMLFileToConfig(fileNamePath string) (*PoolConfig, error) {
	byteValue, err := os.ReadFile(fileNamePath)
	if err != nil {
		return nil, errors.Wrap(err, "read pool config")
	}

	config := &PoolConfig{}
	if err := yaml.Unmarshal(byteValue, config); err != nil {
		return nil, errors.Wrap(err, "parse pool config")
	}

	return config, nil
}

// Options materializes the construction-time options the file describes.
func (c *PoolConfig) Options() Options {
	options := Options{MaxTries: c.MaxTries}
	if c.DecreaseErrorPeriodSeconds > 0 {
		options.DecreaseErrorPeriod = time.Duration(c.DecreaseErrorPeriodSeconds) * time.Second
	}
	if c.FailureWindowSeconds > 0 {
		options.FailureWindow = time.Duration(c.FailureWindowSeconds) * time.Second
	}
	for _, r := range c.Replicas {
		options.Priorities = append(options.Priorities, r.Priority)
	}
	return options
}

// Settings materializes the per-call defaults the file describes.
func (c *PoolConfig) Settings() *Settings {
	return &Settings{
		MaxParallelReplicas:   c.MaxParallelReplicas,
		SkipUnavailableShards: c.SkipUnavailableShards,
	}
}
