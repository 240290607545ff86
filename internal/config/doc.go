// Package config defines ghostscan configuration and validation.
package config
