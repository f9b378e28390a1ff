package commands

const (
	_etc = `C:\ProgramData\smartsheet-backup`
	_var = `C:\ProgramData\smartsheet-backup\var`

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = _etc + `\smartsheet-backup.yaml`
	DEFAULT_CREDENTIALS = _etc + `\.google\credentials.json`
)
