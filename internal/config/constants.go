package config

import "time"

// Base application details
const AppName = "regextester"
const ConfigDirName = "regextester"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "regextester.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Target file watching
const WatchDebounce = 150 * time.Millisecond

const SystemClipboard = true
