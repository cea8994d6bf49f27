//go:build !dev

package config

const confDirName = appConfDir
