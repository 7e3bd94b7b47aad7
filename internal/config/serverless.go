package config

import (
	"os"
	"sync"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = &ServerlessConfig{
			IsLambda:     isRunningInLambda(),
			FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
			Region:       os.Getenv("AWS_REGION"),
			Stage:        GetEnv("STAGE", "dev"),
		}
	})
	return serverlessConfig
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return GetServerlessConfig().IsLambda
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless modifies configuration for serverless
// deployment. Lambda filesystems are read-only outside /tmp and /mnt,
// so local paths are rewritten to the EFS mount when present, /tmp
// otherwise.
func AdaptConfigForServerless(config *Config) *Config {
	if !IsServerlessMode() {
		return config
	}

	if config.Store.Type == "sqlite" && config.Store.Path == "./data/storage-rental.db" {
		if efsPath := os.Getenv("EFS_MOUNT_PATH"); efsPath != "" {
			config.Store.Path = efsPath + "/storage-rental.db"
		} else {
			config.Store.Path = "/tmp/storage-rental.db"
		}
	}

	if config.Blob.Type == "local" && config.Blob.LocalPath == "./data/images" {
		if efsPath := os.Getenv("EFS_MOUNT_PATH"); efsPath != "" {
			config.Blob.LocalPath = efsPath + "/images"
		} else {
			config.Blob.LocalPath = "/tmp/images"
		}
	}

	return config
}

// GetOptimizedConfig returns configuration adapted to the current
// deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}
	return AdaptConfigForServerless(config), nil
}
