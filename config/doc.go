// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// Environment variables (optionally supplied through a .env file) override
// selected fields so deployments can avoid editing the YAML.
package config
