package commands

const (
	_etc = "/usr/local/etc/smartsheet-backup"
	_var = "/usr/local/var/smartsheet-backup"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = _etc + "/smartsheet-backup.yaml"
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
