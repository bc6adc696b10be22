package taskmaster

import "errors"

// DBFileName is the database file written by the TaskMaster application.
const DBFileName = "taskmaster.db"

// AppDirName is the directory TaskMaster uses under the platform app-data dir.
const AppDirName = "TaskMaster"

// Error variables for configuration and database discovery.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDBPathEmpty        = errors.New("db_path cannot be empty")
	ErrFlagRequiresArg    = errors.New("flag requires an argument")
	ErrUnknownFlag        = errors.New("unknown flag")
	ErrDatabaseNotFound   = errors.New("database not found")
	ErrDBPathMissing      = errors.New("database path does not exist")
)
