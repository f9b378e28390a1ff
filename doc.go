// Copyright 2026 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package smartsheetbackup backs up Smartsheet sheets, including the change history of every cell, to
JSON files.

smartsheet-backup can be used from the command line but is really intended to be run from a cron job
to keep a rolling set of backups of a sheet.

smartsheet-backup supports the following commands:

  - backup, to back up a sheet and its cell history to a timestamped JSON file
  - list, to list the sheets accessible with the Smartsheet access token
  - authorise, to authorise uploading backup files to a Google Drive folder
  - version, to display the application version
*/
package smartsheetbackup
