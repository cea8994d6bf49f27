//go:build dev

package config

// dev builds keep their config apart from the installed binary
const confDirName = ".sharedrepos-dev"
